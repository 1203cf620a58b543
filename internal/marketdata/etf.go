package marketdata

import (
	"context"
	"errors"
	"fmt"

	"market-pulse/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	toneRich  = "trading rich"
	toneCheap = "trading cheap"
	toneFlat  = "flat"

	// Display-only band around par.
	toneBand = 0.5
)

// FetchETFPremiums scrapes every configured fund. A failing fund is marked
// unavailable and never aborts the batch; results keep the fund-list order.
func (g *Gateway) FetchETFPremiums(ctx context.Context) domain.ETFPremiums {
	ctx, span := g.tracer.Start(ctx, "marketdata.fetch-etf-premiums")
	defer span.End()

	out := make(domain.ETFPremiums, len(g.cfg.Funds))
	for i, f := range g.cfg.Funds {
		out[i] = domain.ETFPremium{Fund: f}
	}
	if g.premiums == nil {
		for i := range out {
			out[i].Err = fmt.Errorf("no premium source configured: %w", domain.ErrNetwork)
		}
		return out
	}

	var eg errgroup.Group
	eg.SetLimit(g.cfg.MaxParallelScrapes)
	for i := range out {
		eg.Go(func() error {
			code := out[i].Fund.Code
			v, err := g.premiums.FetchPremium(ctx, code)
			if err != nil {
				log.WithFields(log.Fields{
					"source": "etf_premium",
					"code":   code,
					"error":  err.Error(),
				}).Warn("fund premium unavailable")
				out[i].Err = err
				return nil
			}
			out[i].Premium = domain.Float(v)
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

// PremiumTone classifies a premium for display only.
func PremiumTone(premium float64) string {
	switch {
	case premium > toneBand:
		return toneRich
	case premium < -toneBand:
		return toneCheap
	default:
		return toneFlat
	}
}

// PremiumLine renders "name (code): +X.XX% (tone)" or the failure reason.
func PremiumLine(p domain.ETFPremium) string {
	name := p.Fund.Name
	if name == "" {
		name = p.Fund.Code
	}
	if p.Premium == nil {
		reason := "fetch failed"
		if errors.Is(p.Err, domain.ErrParse) {
			reason = "premium not found"
		}
		return fmt.Sprintf("%s (%s): %s", name, p.Fund.Code, reason)
	}
	return fmt.Sprintf("%s (%s): %+.2f%% (%s)", name, p.Fund.Code, *p.Premium, PremiumTone(*p.Premium))
}

// PremiumLines renders one line per fund in order.
func PremiumLines(ps domain.ETFPremiums) []string {
	lines := make([]string, 0, len(ps))
	for _, p := range ps {
		lines = append(lines, PremiumLine(p))
	}
	return lines
}
