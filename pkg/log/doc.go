// Package log wraps zerolog with roach's component/task/worker child-logger
// conventions. It is an observability side channel; task state always lives
// in the queue directories, never in the log stream.
package log
