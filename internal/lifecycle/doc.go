// Package lifecycle orchestrates the run phase of the program: defaulting of
// runtime paths, signal wiring, optional detaching through the daemonizer,
// and guarded startup invocation.
//
// The policy is cooperative shutdown. The interrupt signal clears the shared
// run indicator and the application loop is expected to notice; the terminate
// signal ends the process immediately after the registered shutdown hooks
// run. Once the run phase has begun, no error escaping startup surfaces as an
// unhandled fault: both the foreground path here and the detached path inside
// the daemonizer convert it into a diagnosed process exit.
package lifecycle
