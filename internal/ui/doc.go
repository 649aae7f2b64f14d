// Package ui contains the Bubble Tea program that drives the console.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Key presses are
//     translated by internal/input into logical events and handed to the view
//     on top of the navigation stack. Every other message is routed through a
//     typed handler registry so each tea.Msg is handled by a focused function.
//   - Views never touch the model directly. They receive a *Context on every
//     Render and Handle call and use it to push or pop views, report info and
//     errors, run menu actions and start background jobs.
//
// Views:
//   - menuView renders one level of the menu tree. Items whose capability is
//     missing stay visible but are inert.
//   - outputView shows read-only text such as captured script output or a
//     task report.
//   - configView edits the persisted API settings.
//   - formView collects values for a menu.Form.
//   - loadingView animates while a job runs and is the only view that needs
//     timed input.
//
// Jobs:
//   - Anything that blocks (REST calls, the poll loop, child processes) runs
//     inside a tea.Cmd goroutine started by startJob. The job reports back
//     through jobDoneMsg, which pops the loading view and dispatches the
//     job's own result message. Quit while a job runs cancels its context and
//     the program exits once the job has wound down.
package ui
