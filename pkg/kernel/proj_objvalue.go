package kernel

type JobTitle string

type JobDescription string

type JobPosition string

type JobRequirement string

func (r JobRequirement) String() string { return string(r) }

type JobBenefit string

type BucketURL string
