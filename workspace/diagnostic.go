package workspace

// DiagnosticSeverity is the conventional four-level severity scale.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// Diagnostic is an annotation attached to a workspace edit. The model carries
// and serializes diagnostics in addition order; interpreting or presenting
// them is the consumer's job.
type Diagnostic struct {
	URI      URI                `json:"uri"`
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Code     string             `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}
