/*
Package editor implements the port configuration editor.

The editor is a small state machine (Closed, Open, Submitting) that owns an
EditSession while its dialog is open. ShowConfiguration snapshots a selected port
into the session, the Set* operations stand in for the operator editing the form,
and Apply turns the session into a revision-guarded update request.

The outcome of Apply falls into exactly one of three cases:

  - Applied: the service accepted the update. The returned entity replaces the
    cached one, the notifier is signalled and the dialog closes.
  - Rejected: the service reported correctable input. The dialog stays open with
    the session untouched and a notice lists the messages.
  - Failed: anything else. The dialog closes and the error is handed to the
    error handler; the cache is left alone.

Only one update can be in flight per editor; Apply, Cancel and edits return
domain.ErrSubmitInProgress while it is.
*/
package editor
