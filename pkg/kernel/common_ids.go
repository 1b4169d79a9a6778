package kernel

type EmployerID string

func NewEmployerID(id string) EmployerID { return EmployerID(id) }
func (e EmployerID) String() string      { return string(e) }
func (e EmployerID) IsEmpty() bool       { return string(e) == "" }

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }
