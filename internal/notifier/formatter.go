package notifier

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"CryptoPulse/internal/model"
)

// RecentBars is how many of the latest bars the report lists.
const RecentBars = 5

var signalIcons = map[model.SignalType]string{
	model.SignalStrongBuy:  "🟢",
	model.SignalBuy:        "🟩",
	model.SignalNeutral:    "⚪",
	model.SignalSell:       "🟧",
	model.SignalStrongSell: "🔴",
}

// FormatReport renders an analysis as a plain-text message.
func FormatReport(a *model.Analysis) string {
	var b strings.Builder
	sig := a.Signal

	fmt.Fprintf(&b, "📊 CryptoPulse | %s %s | %s\n\n", a.Symbol, a.Timeframe, a.EvaluatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "%s Signal: %s\n\n", signalIcons[sig.Signal.Type], sig.Signal.Label)

	fmt.Fprintf(&b, "Price: %.2f\n", sig.Close)
	fmt.Fprintf(&b, "RSI(14): %.1f\n", sig.RSI)
	smaDev := 0.0
	if sig.SMA > 0 {
		smaDev = (sig.Close - sig.SMA) / sig.SMA * 100
	}
	fmt.Fprintf(&b, "SMA(20): %.2f (%+.1f%%)\n", sig.SMA, smaDev)

	if len(sig.SubSignals) > 0 {
		fmt.Fprintf(&b, "\n%s indicators:\n", a.Snapshot.Class)
		for _, s := range sig.SubSignals {
			mark := "❌"
			if s.Favorable {
				mark = "✅"
			}
			fmt.Fprintf(&b, "  %s %s: %s\n", mark, s.Name, s.Label)
		}
	}

	if a.Sentiment != nil {
		fmt.Fprintf(&b, "\nFear & Greed: %d (%s)\n", a.Sentiment.Value, a.Sentiment.Classification)
	}

	if a.Snapshot != nil && a.Snapshot.Series != nil && a.Snapshot.Series.Len() > 0 {
		b.WriteString("\nRecent bars:\n")
		b.WriteString(formatBars(a.Snapshot.Series, RecentBars))
	}
	return b.String()
}

func formatBars(s *model.Series, n int) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "time\topen\thigh\tlow\tclose\tvolume\t")
	start := s.Len() - n
	if start < 0 {
		start = 0
	}
	for _, bar := range s.Bars[start:] {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.0f\t\n",
			bar.Time.Format("01-02 15:04"), bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}
	w.Flush()
	return b.String()
}

// FormatError renders a failed evaluation, keeping the error category visible.
func FormatError(symbol, timeframe string, err error) string {
	return fmt.Sprintf("❌ %s %s: %s\n%v", symbol, timeframe, model.ErrorCategory(err), err)
}

// FormatHelp lists the supported chat commands.
func FormatHelp(symbols []string) string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	b.WriteString("• /signal SYMBOL TIMEFRAME (e.g. /signal BTC-USD 1h)\n")
	b.WriteString("• /help\n\n")
	tfs := make([]string, len(model.Timeframes))
	for i, tf := range model.Timeframes {
		tfs[i] = string(tf)
	}
	fmt.Fprintf(&b, "Timeframes: %s\n", strings.Join(tfs, ", "))
	if len(symbols) > 0 {
		fmt.Fprintf(&b, "Symbols: %s\n", strings.Join(symbols, ", "))
	}
	return b.String()
}
