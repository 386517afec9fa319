package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/openadmin-hq/restdata-go/internal/app"
	"github.com/openadmin-hq/restdata-go/internal/config"
	"github.com/openadmin-hq/restdata-go/internal/logger"
)

// multiFlag collects repeated flag values in the order they appear.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "restcall failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		profile  = flag.String("profile", "", "API profile name from the profiles file")
		op       = flag.String("op", "list", "operation: list, one, many, many-reference, create, update, update-many, delete, delete-many")
		resource = flag.String("resource", "", "resource collection name")
		id       = flag.String("id", "", "record identifier")
		page     = flag.Int("page", 1, "one-based page number")
		perPage  = flag.Int("per-page", 25, "records per page")
		sort     = flag.String("sort", "", "sort as field or field:order")
		search   = flag.String("q", "", "free-text search term")
		target   = flag.String("target", "", "reference field name for many-reference")
		targetID = flag.String("target-id", "", "reference identifier for many-reference")
		data     = flag.String("data", "", "JSON record body for create/update (reads stdin when -)")

		ids      multiFlag
		filters  multiFlag
		includes multiFlag
	)
	flag.Var(&ids, "ids", "record identifiers, repeatable or comma separated")
	flag.Var(&filters, "filter", "filter condition name=value, repeatable")
	flag.Var(&includes, "include", "relation to embed, as name or name:field1,field2, repeatable")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("restcall starting", "config", cfg)

	body := *data
	if body == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read data from stdin: %w", err)
		}
		body = string(raw)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	invoker, err := app.NewInvoker(cfg, *profile, os.Stdout, log)
	if err != nil {
		logger.ErrorObj("failed to initialize invoker", "error", err)
		return err
	}

	req := app.Request{
		Op:       *op,
		Resource: *resource,
		ID:       *id,
		IDs:      ids,
		Page:     *page,
		PerPage:  *perPage,
		Sort:     *sort,
		Filters:  filters,
		Search:   *search,
		Include:  includes,
		Target:   *target,
		TargetID: *targetID,
		Data:     body,
	}

	if err := invoker.Run(ctx, req); err != nil {
		return fmt.Errorf("%s %s: %w", req.Op, req.Resource, err)
	}
	return nil
}
