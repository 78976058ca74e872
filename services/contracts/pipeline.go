package contracts

import (
	"context"
	"log/slog"
	"time"

	"basegov/lib/scrapers/basegov"
	"basegov/lib/telemetry"

	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("basegov.services.contracts")

type Stats struct {
	Discovered   int
	FetchFailed  int
	Rejected     int
	Accepted     int
	PartialCells int
}

type Result struct {
	// unique by contract id, in discovery-then-enrichment order
	Records []Record
	Stats   Stats
}

// NewPortalClient builds the endpoint client from the pipeline config.
func NewPortalClient(ctx context.Context, cfg *Config) (*basegov.Client, error) {
	return basegov.NewClient(ctx, basegov.ClientOptions{
		PageSize:     cfg.PageSize,
		RetryCount:   cfg.RetryCount,
		RetryWait:    time.Duration(cfg.RetryWaitMs) * time.Millisecond,
		RequestDelay: time.Duration(cfg.RequestDelayMs) * time.Millisecond,
	})
}

// Run executes the extraction pipeline sequentially: discover contract ids
// for every (keyword, district) search cell, fetch and normalize details
// for each unique id, filter by execution district, and accumulate the
// deduplicated result set. per-item failures skip the item, only config
// errors abort the run.
func Run(ctx context.Context, client *basegov.Client, cfg *Config) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	err := cfg.Validate()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid config")
		return nil, err
	}

	result := &Result{}
	order, keywordByID := discover(ctx, client, cfg, &result.Stats)
	result.Stats.Discovered = len(order)

	filter := newDistrictFilter(cfg)
	for _, id := range order {
		detail, err := client.GetDetail(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Error("skipping contract, detail fetch failed", "contract", id, "err", err)
			result.Stats.FetchFailed++
			continue
		}

		record := newRecord(detail, keywordByID[id], client.DetailPageLink(id))

		district, ok := filter.Accept(detail.ExecutionLocations())
		if !ok {
			slog.Debug("contract outside target districts",
				"contract", id, "location", record.Location)
			result.Stats.Rejected++
			continue
		}
		record.District = district

		result.Records = append(result.Records, record)
		result.Stats.Accepted++
	}

	slog.Info("extraction complete",
		"discovered", result.Stats.Discovered,
		"accepted", result.Stats.Accepted,
		"rejected", result.Stats.Rejected,
		"fetch_failed", result.Stats.FetchFailed)
	return result, nil
}

// discover pages through the search endpoint for every keyword and district
// scope, merging ids into a single first-seen-ordered set. a search cell
// whose retries are exhausted is logged as partially processed and skipped,
// it never aborts the run.
func discover(ctx context.Context, client *basegov.Client, cfg *Config, stats *Stats) ([]int64, map[int64]string) {
	ctx, span := tracer.Start(ctx, "discover")
	defer span.End()

	var order []int64
	keywordByID := map[int64]string{}

	for _, keyword := range cfg.Keywords {
		for _, districtName := range cfg.districtNames() {
			districtID := cfg.Districts[districtName]

			found := 0
			for page := 0; ; page++ {
				items, more, err := client.SearchPage(ctx, keyword, districtID, page)
				if err != nil {
					if ctx.Err() != nil {
						return order, keywordByID
					}
					slog.Error("keyword partially processed, search failed",
						"keyword", keyword,
						"district", districtName,
						"page", page,
						"err", err)
					stats.PartialCells++
					break
				}

				for _, item := range items {
					found++
					if _, seen := keywordByID[item.ID]; seen {
						continue
					}
					keywordByID[item.ID] = keyword
					order = append(order, item.ID)
				}

				if !more {
					break
				}
			}

			slog.Info("discovery cell done",
				"keyword", keyword, "district", districtName, "results", found)
		}
	}

	return order, keywordByID
}
