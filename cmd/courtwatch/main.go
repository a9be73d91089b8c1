package main

import (
	"context"

	"courtwatch-backend/cmd/courtwatch/cmd"
	"courtwatch-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()

	tel, err := telemetry.SetupFromEnv(ctx, "courtwatch-cli")
	if err == nil {
		defer tel.Shutdown(context.Background())
	}

	cmd.Execute(ctx)
}
