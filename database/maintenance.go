package database

import (
	"context"

	"github.com/hashicorp/go-multierror"
)

// Maintain runs the maintenance operation of all started storages.
func Maintain(ctx context.Context) error {
	controllersLock.Lock()
	all := make([]*Controller, 0, len(controllers))
	for _, c := range controllers {
		all = append(all, c)
	}
	controllersLock.Unlock()

	var merr *multierror.Error
	for _, c := range all {
		if err := c.Maintain(ctx); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}
