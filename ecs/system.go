package ecs

// System is one step of the per-frame tick. Systems build the collectors they
// need at construction and read them in Execute. A system that implements
// io.Closer is closed by Scheduler.Close, which should release its collectors.
type System interface {
	Execute(frame *UpdateFrame)
}
