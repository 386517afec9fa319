package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openadmin-hq/restdata-go/internal/config"
	"github.com/openadmin-hq/restdata-go/pkg/restdata"
)

// Request is one data-access operation parsed from the command line.
type Request struct {
	Op       string
	Resource string
	ID       string
	IDs      []string
	Page     int
	PerPage  int
	Sort     string   // "field" or "field:order"
	Filters  []string // "name=value" entries, in flag order
	Search   string
	Include  []string // "relation" or "relation:field1,field2"
	Target   string
	TargetID string
	Data     string // raw JSON for create/update
}

// Invoker executes data-access operations against one configured API and
// writes the result envelope as JSON.
type Invoker struct {
	provider *restdata.Provider
	out      io.Writer
	log      *zap.SugaredLogger
}

// NewInvoker resolves the target API from the profile registry (or the
// configured base URL when no profile is named) and builds the provider.
func NewInvoker(cfg *config.Config, profileName string, out io.Writer, log *zap.SugaredLogger) (*Invoker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	baseURL := cfg.BaseURL
	timeout := cfg.Timeout
	var headers map[string]string

	if profileName != "" {
		profiles, err := config.LoadProfiles(cfg.ProfilesFile)
		if err != nil {
			return nil, fmt.Errorf("load profiles registry: %w", err)
		}
		profile, ok := config.ProfileByName(profiles, profileName)
		if !ok {
			return nil, fmt.Errorf("profile %q not found in %s", profileName, cfg.ProfilesFile)
		}
		baseURL = profile.BaseURL
		headers = profile.Headers
		if profile.TimeoutSeconds > 0 {
			timeout = timeoutSeconds(profile.TimeoutSeconds)
		}
	}

	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("no base URL configured (set base_url or pick a profile)")
	}

	provider := restdata.New(baseURL,
		restdata.WithTimeout(timeout),
		restdata.WithHeaders(headers),
		restdata.WithLogger(log),
	)

	return &Invoker{provider: provider, out: out, log: log}, nil
}

// Run executes the request and writes the result envelope to the output.
func (i *Invoker) Run(ctx context.Context, req Request) error {
	if i == nil || i.provider == nil {
		return fmt.Errorf("invoker is not initialized")
	}
	if strings.TrimSpace(req.Resource) == "" {
		return fmt.Errorf("resource is required")
	}

	i.log.Infow("operation start",
		"run_id", uuid.NewString(),
		"op", req.Op,
		"resource", req.Resource,
	)

	result, err := i.dispatch(ctx, req)
	if err != nil {
		if respErr, ok := restdata.AsResponseError(err); ok {
			i.log.Errorw("server rejected request",
				"status", respErr.Status,
				"validation_errors", respErr.Errors,
			)
		}
		return err
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if _, err := fmt.Fprintln(i.out, string(encoded)); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func (i *Invoker) dispatch(ctx context.Context, req Request) (any, error) {
	switch req.Op {
	case "list":
		return i.provider.GetList(ctx, req.Resource, restdata.GetListParams{
			Pagination: pagination(req),
			Sort:       parseSort(req.Sort),
			Filter:     parseFilters(req.Filters, req.Search),
			Meta:       parseMeta(req.Include),
		})
	case "one":
		return i.provider.GetOne(ctx, req.Resource, restdata.GetOneParams{
			ID:   parseID(req.ID),
			Meta: parseMeta(req.Include),
		})
	case "many":
		return i.provider.GetMany(ctx, req.Resource, restdata.GetManyParams{
			IDs: parseIDs(req.IDs),
		})
	case "many-reference":
		return i.provider.GetManyReference(ctx, req.Resource, restdata.GetManyReferenceParams{
			Target:     req.Target,
			ID:         parseID(req.TargetID),
			Pagination: pagination(req),
			Sort:       parseSort(req.Sort),
			Filter:     parseFilters(req.Filters, req.Search),
			Meta:       parseMeta(req.Include),
		})
	case "create":
		data, err := parseData(req.Data)
		if err != nil {
			return nil, err
		}
		return i.provider.Create(ctx, req.Resource, restdata.CreateParams{Data: data})
	case "update":
		data, err := parseData(req.Data)
		if err != nil {
			return nil, err
		}
		return i.provider.Update(ctx, req.Resource, restdata.UpdateParams{
			ID:   parseID(req.ID),
			Data: data,
		})
	case "update-many":
		data, err := parseData(req.Data)
		if err != nil {
			return nil, err
		}
		return i.provider.UpdateMany(ctx, req.Resource, restdata.UpdateManyParams{
			IDs:  parseIDs(req.IDs),
			Data: data,
		})
	case "delete":
		return i.provider.Delete(ctx, req.Resource, restdata.DeleteParams{ID: parseID(req.ID)})
	case "delete-many":
		return i.provider.DeleteMany(ctx, req.Resource, restdata.DeleteManyParams{
			IDs: parseIDs(req.IDs),
		})
	default:
		return nil, fmt.Errorf("unknown operation %q", req.Op)
	}
}

func pagination(req Request) restdata.Pagination {
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = 25
	}
	return restdata.Pagination{Page: page, PerPage: perPage}
}

// parseSort splits "field:order"; a bare field defaults to ascending.
func parseSort(s string) restdata.Sort {
	s = strings.TrimSpace(s)
	if s == "" {
		return restdata.Sort{}
	}
	field, order, found := strings.Cut(s, ":")
	if !found || strings.TrimSpace(order) == "" {
		order = "asc"
	}
	return restdata.Sort{Field: strings.TrimSpace(field), Order: strings.TrimSpace(order)}
}

// parseFilters converts "name=value" entries into filter conditions,
// preserving flag order, and appends the free-text search term last.
func parseFilters(entries []string, search string) restdata.Filter {
	var filter restdata.Filter
	for _, entry := range entries {
		name, value, found := strings.Cut(entry, "=")
		if !found || strings.TrimSpace(name) == "" {
			continue
		}
		filter = append(filter, restdata.Field{Name: strings.TrimSpace(name), Value: value})
	}
	if search != "" {
		filter = append(filter, restdata.Field{Name: restdata.SearchField, Value: search})
	}
	return filter
}

// parseMeta converts "relation" / "relation:f1,f2" entries into an include set.
func parseMeta(entries []string) *restdata.Meta {
	if len(entries) == 0 {
		return nil
	}
	include := make(restdata.Include, 0, len(entries))
	for _, entry := range entries {
		name, fields, found := strings.Cut(strings.TrimSpace(entry), ":")
		if name == "" {
			continue
		}
		rel := restdata.Relation{Name: name}
		if found && fields != "" {
			rel.Fields = strings.Split(fields, ",")
		}
		include = append(include, rel)
	}
	return &restdata.Meta{Include: include}
}

// parseID keeps numeric identifiers numeric so they serialize without quotes.
func parseID(s string) any {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

func parseIDs(entries []string) []any {
	ids := make([]any, 0, len(entries))
	for _, entry := range entries {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, parseID(part))
			}
		}
	}
	return ids
}

func parseData(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("data is required for this operation")
	}
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return data, nil
}

func timeoutSeconds(n int64) time.Duration {
	return time.Duration(n) * time.Second
}
