package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/studiowebux/nlpbrowser/internal/analytics"
	"github.com/studiowebux/nlpbrowser/internal/client"
	"github.com/studiowebux/nlpbrowser/internal/input"
	"github.com/studiowebux/nlpbrowser/internal/mock"
	"github.com/studiowebux/nlpbrowser/internal/render"
	"github.com/studiowebux/nlpbrowser/internal/types"
	"github.com/studiowebux/nlpbrowser/internal/version"
)

// PrintError writes err with an actionable hint when one is known
func PrintError(w io.Writer, err error) {
	if input.IsValidationError(err) {
		fmt.Fprintf(w, "%s %s\n", color.YellowString("Aviso:"), err)
		return
	}

	fmt.Fprintf(w, "%s %v\n", color.RedString("Erro:"), err)
	if hint := client.Describe(err); hint != "" {
		fmt.Fprintf(w, "  %s\n", color.New(color.Faint).Sprint(hint))
	}
}

// HealthChecker is the part of the client used by RunHealth
type HealthChecker interface {
	BaseURL() string
	Health(ctx context.Context) (*types.HealthStatus, error)
	Info(ctx context.Context) (*types.ServiceInfo, error)
}

// RunHealth reports whether the backend is up and its models are loaded.
// It returns an error when the service is unreachable or not initialized.
func RunHealth(ctx context.Context, c HealthChecker, w io.Writer) error {
	status, err := c.Health(ctx)
	if err != nil {
		return err
	}

	state := color.GreenString(status.Status)
	if status.Status != "online" {
		state = color.YellowString(status.Status)
	}
	models := color.GreenString("carregados")
	if !status.NLPInitialized {
		models = color.RedString("não inicializados")
	}

	fmt.Fprintf(w, "Serviço:  %s\n", c.BaseURL())
	fmt.Fprintf(w, "Status:   %s\n", state)
	fmt.Fprintf(w, "Modelos:  %s\n", models)

	// the banner route is optional; older backends may not expose it
	if info, err := c.Info(ctx); err == nil {
		fmt.Fprintf(w, "Versão:   %s\n", info.Version)
		for _, ep := range info.Endpoints {
			fmt.Fprintf(w, "  %s\n", ep)
		}

		compat := version.Check(info)
		if !compat.Supported {
			fmt.Fprintf(w, "%s versão %q anterior à mínima suportada %s\n",
				color.YellowString("Aviso:"), compat.ServiceVersion, version.MinServiceVersion)
		}
		if len(compat.MissingRoutes) > 0 {
			fmt.Fprintf(w, "%s rotas ausentes: %s\n",
				color.YellowString("Aviso:"), strings.Join(compat.MissingRoutes, ", "))
		}
	}

	if !status.NLPInitialized {
		return fmt.Errorf("NLP processor not initialized")
	}
	return nil
}

// PrintStats renders per-kind call statistics as a table
func PrintStats(w io.Writer, stats []analytics.Stats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "Nenhuma chamada registrada.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Kind", "Route", "Calls", "Success", "Network", "Avg", "Min", "Max", "Statuses", "Last"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, s := range stats {
		table.Append([]string{
			s.Kind,
			s.Method + " " + s.Path,
			strconv.Itoa(s.TotalCalls),
			render.Percent(s.SuccessRate() / 100),
			strconv.Itoa(s.NetworkErrors),
			fmt.Sprintf("%.0fms", s.AvgDurationMs),
			fmt.Sprintf("%dms", s.MinDurationMs),
			fmt.Sprintf("%dms", s.MaxDurationMs),
			formatStatusCodes(s.StatusCodes),
			s.LastCalled.Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}

// PrintRecent renders the latest recorded calls as a table
func PrintRecent(w io.Writer, entries []analytics.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Nenhuma chamada registrada.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"When", "Kind", "Status", "Duration", "Request ID", "Error"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, e := range entries {
		status := "-"
		if e.StatusCode != 0 {
			status = strconv.Itoa(e.StatusCode)
		}
		table.Append([]string{
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Kind,
			status,
			fmt.Sprintf("%dms", e.DurationMs),
			e.RequestID,
			e.ErrorMessage,
		})
	}
	table.Render()
}

// PrintMockRequest writes one line per request served by the mock
func PrintMockRequest(w io.Writer, l mock.RequestLog) {
	fmt.Fprintf(w, "%s %s %s %d %s (%s)\n",
		l.Timestamp.Format("15:04:05"),
		l.Method,
		l.Path,
		l.Status,
		l.MatchedRule,
		l.Duration.Round(time.Millisecond),
	)
}

// PrintMockSummary groups the requests served by the mock per route
func PrintMockSummary(w io.Writer, logs []mock.RequestLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "Nenhuma requisição recebida.")
		return
	}

	type routeStats struct {
		method, path, rule string
		calls              int
		codes              map[int]int
		total              time.Duration
	}
	byRoute := make(map[string]*routeStats)
	var order []string
	for _, l := range logs {
		key := l.Method + " " + l.Path
		rs, ok := byRoute[key]
		if !ok {
			rs = &routeStats{method: l.Method, path: l.Path, rule: l.MatchedRule, codes: make(map[int]int)}
			byRoute[key] = rs
			order = append(order, key)
		}
		rs.calls++
		rs.codes[l.Status]++
		rs.total += l.Duration
	}
	sort.Strings(order)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Route", "Rule", "Calls", "Status", "Avg"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, key := range order {
		rs := byRoute[key]
		avg := rs.total / time.Duration(rs.calls)
		table.Append([]string{
			key,
			rs.rule,
			strconv.Itoa(rs.calls),
			formatStatusCodes(rs.codes),
			avg.Round(time.Millisecond).String(),
		})
	}
	table.Render()
}

// formatStatusCodes renders {200: 3, 500: 1} as "200×3 500×1"
func formatStatusCodes(codes map[int]int) string {
	keys := make([]int, 0, len(codes))
	for k := range codes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		label := strconv.Itoa(k)
		if k == 0 {
			label = "net"
		}
		parts = append(parts, fmt.Sprintf("%s×%d", label, codes[k]))
	}
	return strings.Join(parts, " ")
}
