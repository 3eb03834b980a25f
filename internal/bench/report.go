// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/govalues/decimal"
	"go.uber.org/multierr"

	"github.com/katalvlaran/strongbirthday/internal/results"
	"github.com/katalvlaran/strongbirthday/numeric"
)

// fixedPlaces is the number of decimal places of the fixed-point columns;
// with the leading "0." a probability then fills decimal's 19 digits.
const fixedPlaces = 18

// writeReport prints one block per case: every strategy's probability to
// display significant digits, its 18-place fixed-point value, the absolute
// and relative deviation from the case reference, timing and engine stats.
// The relative column is the one that speaks for tiny probabilities, whose
// fixed-point value rounds to zero.
func writeReport(out io.Writer, c *numeric.Context, tbl *results.Table, p plan, display int, run results.Run) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "run %s  digits=%d  started=%s\n\n", run.ID, run.Digits, run.StartedAt.Format(time.RFC3339))

	for _, cs := range p.cases {
		recs, err := tbl.ForCase(cs.M, cs.N, cs.K)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			continue
		}
		ref := reference(recs)
		var refFixed decimal.Decimal
		hasRef := false
		if ref != nil {
			if refFixed, err = fixed(ref.Value); err == nil {
				hasRef = true
			}
		}

		fmt.Fprintf(tw, "m=%d n=%d k=%d\n", cs.M, cs.N, cs.K)
		fmt.Fprintln(tw, "strategy\tprobability\tfixed\tdeviation\trel\telapsed\tstates\tpeak\tmode\tdigest\t")
		for _, r := range recs {
			if r.Failed() {
				fmt.Fprintf(tw, "%s\terror: %s\t\t\t\t%s\t\t\t\t\t\n", r.Strategy, r.Err, r.Elapsed.Round(time.Microsecond))
				continue
			}
			fx, deviation, rel := "-", "-", "-"
			if ref != nil && ref.Value != nil && r.Value != nil {
				rel = c.RelDiff(ref.Value, r.Value).Text('e', 1)
			}
			if d, err := fixed(r.Value); err == nil {
				fx = d.String()
				if hasRef {
					if diff, err := d.Sub(refFixed); err == nil {
						deviation = diff.Abs().String()
					}
				}
			}
			mode := r.LayerMode
			if mode == "" {
				mode = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				r.Strategy,
				numeric.Text(r.Value, display),
				fx,
				deviation,
				rel,
				r.Elapsed.Round(time.Microsecond),
				humanize.Comma(int64(r.States)),
				humanize.Comma(int64(max(r.PeakEntries, r.PeakStack))),
				mode,
				results.DigestHex(r.Digest),
			)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// fixed rounds a probability to fixedPlaces decimal places.
func fixed(v *big.Float) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Decimal{}, fmt.Errorf("bench: no value")
	}
	return decimal.Parse(v.Text('f', fixedPlaces))
}

// listHistory prints the runs stored in cfg.DBPath.
func listHistory(ctx context.Context, cfg Config, out io.Writer) (err error) {
	if cfg.DBPath == "" {
		return fmt.Errorf("%w: -history needs -db", ErrBadConfig)
	}
	store, err := results.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, store.Close()) }()

	runs, err := store.Runs(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "run\tstarted\tdigits\trecords\t")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t\n", r.ID, humanize.Time(r.StartedAt), r.Digits, humanize.Comma(int64(r.Records)))
	}
	return tw.Flush()
}
