package errors

// Code is a machine-readable failure code.
type Code string

// Processing failures, raised by stage or pipeline logic during Execute.
const (
	// CodeStageProcessing indicates an unrecoverable problem while a stage
	// was processing an item collection. Aborts the current Execute call.
	CodeStageProcessing Code = "STAGE_PROCESSING"
	// CodeTermination is a deliberate whole-run abort raised by a stage.
	// It propagates exactly like a stage processing failure.
	CodeTermination Code = "TERMINATION"
)

// Configuration failures, raised only during Initialize.
const (
	// CodeInitialization indicates required configuration was missing or
	// invalid when a component was initialized.
	CodeInitialization Code = "COMPONENT_INITIALIZATION"
	// CodeInvalidDefinition indicates a pipeline definition file could not
	// be parsed or failed validation.
	CodeInvalidDefinition Code = "INVALID_DEFINITION"
)

// Misuse failures: lifecycle invariant violations.
const (
	// CodeMisuse indicates a component was used outside its lifecycle
	// contract: executing before initialization, mutating configuration
	// after initialization, or any use after destruction.
	CodeMisuse Code = "COMPONENT_MISUSE"
)

// isProcessingCode reports whether a code belongs to the processing-failure
// family. Termination is a processing failure.
func isProcessingCode(code Code) bool {
	return code == CodeStageProcessing || code == CodeTermination
}
