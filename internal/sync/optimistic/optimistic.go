// Package optimistic provides the snapshot/apply/commit/rollback pattern
// mutating views use: show the expected result immediately, reconcile with
// the store's answer, and restore the snapshot when the write fails.
package optimistic

// Apply performs an optimistic mutation over state read by get and written
// by set. The change function produces the locally predicted state, which
// is installed before commit runs. When commit fails the snapshot taken
// beforehand is restored and the error returned.
func Apply[S any](get func() S, set func(S), change func(S) S, commit func() error) error {
	snapshot := get()
	set(change(snapshot))
	if err := commit(); err != nil {
		set(snapshot)
		return err
	}
	return nil
}
