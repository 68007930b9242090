package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beornf/linstor-api-go/cmd/linstor-mcp/app"
	"github.com/beornf/linstor-api-go/internal/response"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	code := response.ExitInternal
	var exitErr *app.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		err = exitErr.Err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "linstor-mcp: %v\n", err)
	}
	os.Exit(code)
}
