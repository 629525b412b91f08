package types

// Category represents service categories
type Category string

const (
	CategoryFilesystem Category = "filesystem"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a tool callable by the LLM
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"` // "string", "number", "boolean"
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Enum        []string `json:"enum,omitempty"`
}

// Result statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result represents a dispatch outcome. Exactly one of Data or Error is
// set; Operation and Arguments always echo the originating request.
type Result struct {
	Status    string                 `json:"status"`
	Operation string                 `json:"operation"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Error     *ErrorInfo             `json:"error,omitempty"`
}

// ErrorInfo carries the structured failure descriptor of a Result.
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Success builds a success result for an operation.
func Success(operation string, args map[string]interface{}, data map[string]interface{}) *Result {
	return &Result{
		Status:    StatusSuccess,
		Operation: operation,
		Arguments: args,
		Data:      data,
	}
}

// Failure builds an error result for an operation.
func Failure(operation string, args map[string]interface{}, kind ErrorKind, message string) *Result {
	return &Result{
		Status:    StatusError,
		Operation: operation,
		Arguments: args,
		Error:     &ErrorInfo{Kind: kind, Message: message},
	}
}
