// Package gather joins the outcomes of store operations dispatched
// concurrently within a single request. Handlers list existence gates before
// the primary operation so a gate failure takes precedence over the primary
// result, even when the primary operation has already completed.
package gather

import "sync"

// All runs every task concurrently and waits for all of them to finish.
// It returns the first non-nil error in declaration order. Tasks are never
// cancelled on a sibling failure; each runs to completion.
func All(tasks ...func() error) error {
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task func() error) {
			defer wg.Done()
			errs[i] = task()
		}(i, task)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
