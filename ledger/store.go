package ledger

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Base is a durable store holding the ledger as a single key-value
// document, overwritten wholesale on every flush.
type Base interface {
	Load() (map[string]Entry, error)
	Save(entries map[string]Entry) error
}

func Initialize(mode string, ctx *cli.Context) (Base, error) {
	switch mode {
	case "local":
		return NewLocal(ctx.String("ledger-local-path"))
	case "redis":
		cmdLineArg := "ledger-redis-url"
		if !ctx.IsSet(cmdLineArg) {
			return nil, fmt.Errorf("%s: Must be set for ledger storage mode 'redis'", cmdLineArg)
		}
		return NewRedis(ctx.String(cmdLineArg))
	case "s3":
		cmdLineArg := "ledger-s3-bucket-name"
		if !ctx.IsSet(cmdLineArg) {
			return nil, fmt.Errorf("%s: Must be set for ledger storage mode 's3'", cmdLineArg)
		}
		return NewS3(ctx.String(cmdLineArg))
	default:
		return nil, fmt.Errorf("unknown ledger storage mode %s", mode)
	}
}
