package cmd

import (
	"log"

	"github.com/yonnyZer0/apify/pkg/apclient/aperr"
)

// exitIfClientError inspects errors returned from the client and emits
// user-friendly guidance before exiting. Other errors fall back to
// log.Fatalf.
func exitIfClientError(err error) {
	if err == nil {
		return
	}
	switch {
	case aperr.IsCode(err, aperr.CodeUnauthorized):
		log.Fatalf("authentication required: run 'apifyctl auth login' (%v)", err)
	case aperr.IsCode(err, aperr.CodeInvalidParameter):
		log.Fatalf("invalid arguments: %v", err)
	default:
		log.Fatalf("%v", err)
	}
}
