package interfaces

// IWorkflowMetrics receives engine events for instrumentation.
type IWorkflowMetrics interface {
	ActionApplied(action, outcome string)
	WorkOrderCreated(action string)
	RegressionBlocked(from, requested string)
	AutoReadyTriggered()
	DocumentFetchFailed()
	WriteConflict()
}

// NopMetrics discards every event.
type NopMetrics struct{}

func (NopMetrics) ActionApplied(string, string)     {}
func (NopMetrics) WorkOrderCreated(string)          {}
func (NopMetrics) RegressionBlocked(string, string) {}
func (NopMetrics) AutoReadyTriggered()              {}
func (NopMetrics) DocumentFetchFailed()             {}
func (NopMetrics) WriteConflict()                   {}

var _ IWorkflowMetrics = NopMetrics{}
