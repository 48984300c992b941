package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the API handlers to manage background
// scan processing.
// Example usage:
//
//	scheduler := NewScheduler(runner, scanRepo, signalRepo)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewScanCompanyTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	EnqueueScan(company string) error
}
