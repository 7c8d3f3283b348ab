// Package fitloop drives the human-in-the-loop parameter fit for a single
// snapshot.
//
// The loop is a one-state machine: render both previews, prompt, block on
// operator input, repeat. Two numeric tokens update the parameters and
// re-render; any single token confirms the current parameters and ends the
// loop. There is no convergence criterion and no iteration cap; the
// operator's eye is the stopping rule.
//
// Rendering goes through the Renderer interface so the loop stays decoupled
// from the presentation layer, and input/output are injected streams so
// tests can script whole sessions.
package fitloop
