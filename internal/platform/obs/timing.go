package obs

import (
	"context"
	"log"
	"time"
)

// Time logs the duration (and failure, if any) of a named operation.
// Use it deferred with a pointer to the enclosing function's error:
//
//	defer obs.Time(ctx, "resolver.ResolvePostalCode")(&err)
func Time(_ context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("op=%s dur=%dms err=%v", name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("op=%s dur=%dms", name, dur.Milliseconds())
	}
}
