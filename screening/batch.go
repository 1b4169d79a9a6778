package screening

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Batch intake limits
const (
	MaxBatchSize  = 500
	MaxFileSizeMB = 5
	MaxFileSize   = MaxFileSizeMB * 1024 * 1024
	SupportedExt  = ".pdf"
	SupportedMIME = "application/pdf"
)

// ViolationCode identifies one kind of batch validation failure
type ViolationCode string

const (
	ViolationEmptyBatch          ViolationCode = "EMPTY_BATCH"
	ViolationBatchTooLarge       ViolationCode = "BATCH_TOO_LARGE"
	ViolationUnsupportedFileType ViolationCode = "UNSUPPORTED_FILE_TYPE"
	ViolationFileTooLarge        ViolationCode = "FILE_TOO_LARGE"
	ViolationDuplicateFile       ViolationCode = "DUPLICATE_FILE"
	ViolationInvalidJobReference ViolationCode = "INVALID_JOB_REFERENCE"
)

// BatchFile describes one uploaded resume before it is accepted
type BatchFile struct {
	Name        string
	Size        int64
	ContentType string
}

// Violation is one validation failure, tied to a file where applicable
type Violation struct {
	Code    ViolationCode `json:"code"`
	File    string        `json:"file,omitempty"`
	Message string        `json:"message"`
}

// ValidateBatch checks a batch against all intake rules and returns every
// violation found, never stopping at the first one. jobExists reports whether
// the referenced job posting is known.
func ValidateBatch(jobExists bool, files []BatchFile) []Violation {
	var violations []Violation

	if !jobExists {
		violations = append(violations, Violation{
			Code:    ViolationInvalidJobReference,
			Message: "referenced job posting does not exist",
		})
	}

	if len(files) == 0 {
		violations = append(violations, Violation{
			Code:    ViolationEmptyBatch,
			Message: "batch contains no files",
		})
		return violations
	}

	if len(files) > MaxBatchSize {
		violations = append(violations, Violation{
			Code:    ViolationBatchTooLarge,
			Message: fmt.Sprintf("batch has %d files, maximum is %d", len(files), MaxBatchSize),
		})
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if !isSupportedType(f) {
			violations = append(violations, Violation{
				Code:    ViolationUnsupportedFileType,
				File:    f.Name,
				Message: fmt.Sprintf("%s is not a PDF", f.Name),
			})
		}

		if f.Size > MaxFileSize {
			violations = append(violations, Violation{
				Code:    ViolationFileTooLarge,
				File:    f.Name,
				Message: fmt.Sprintf("%s is %d bytes, maximum is %dMB", f.Name, f.Size, MaxFileSizeMB),
			})
		}

		if seen[f.Name] {
			violations = append(violations, Violation{
				Code:    ViolationDuplicateFile,
				File:    f.Name,
				Message: fmt.Sprintf("%s appears more than once in the batch", f.Name),
			})
		}
		seen[f.Name] = true
	}

	return violations
}

func isSupportedType(f BatchFile) bool {
	if f.ContentType == SupportedMIME {
		return true
	}
	return strings.EqualFold(filepath.Ext(f.Name), SupportedExt)
}

// CandidateNameFromFile derives a display name from a resume file name
func CandidateNameFromFile(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(name)
}
