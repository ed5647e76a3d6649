package tui

import (
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/dcm/internal/onprem/topology"
	"nathanbeddoewebdev/dcm/internal/onprem/view"
	"nathanbeddoewebdev/dcm/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	hPad       = 2
	labelWidth = 14
	chartH     = 10
)

func renderField(label, value string) string {
	return styles.Label.Width(labelWidth).Render(label) + styles.Value.Render(value)
}

func renderSummary(s *view.Summary, width int) string {
	usable := max(width-hPad*2, 40)

	var keyPairs string
	if s.KeyPairs == view.NotConfigured {
		keyPairs = styles.WarningText.Render(s.KeyPairs)
	} else {
		keyPairs = styles.Value.Render(s.KeyPairs)
	}

	nodes := styles.Value.Render(nodeCountLabel(s.NodeCount))
	if s.SetupNodes {
		nodes += "  " + styles.AccentText.Render("Setup Nodes (n)")
	}

	info := []string{
		renderField("Provider", s.ProviderName),
		styles.Label.Width(labelWidth).Render("Key Pairs") + keyPairs,
		styles.Label.Width(labelWidth).Render("Nodes") + nodes,
	}
	if s.DeleteDisabled {
		info = append(info, renderField("Universes", strings.Join(s.Universes, ", ")))
	}
	infoCard := styles.Card.Width(usable).Render(strings.Join(info, "\n"))

	blocks := []string{
		styles.Title.Render("Provider Configuration"),
		infoCard,
		"",
		styles.Title.Render("Regions"),
	}

	if s.NoRegions {
		blocks = append(blocks, styles.MutedText.Render("No Regions Configured"))
	} else {
		blocks = append(blocks, renderRegions(s.Regions, usable))
		if chart := renderZoneChart(s.Regions, usable); chart != "" {
			blocks = append(blocks, "", styles.Title.Render("Nodes per zone"), chart)
		}
	}

	return lipgloss.NewStyle().Padding(0, hPad).Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func renderRegions(regions []topology.RegionNodes, width int) string {
	var b strings.Builder
	for i, r := range regions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentText.Bold(true).Render(r.Name))
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %s  (%.4f, %.4f)", r.Code, r.Latitude, r.Longitude)))
		b.WriteString("\n")

		if len(r.Zones) == 0 {
			b.WriteString("  " + styles.MutedText.Render("no zones") + "\n")
			continue
		}
		for _, z := range r.Zones {
			line := "  " + styles.Label.Width(labelWidth).Render(z.Name) +
				styles.Value.Render(nodeCountLabel(z.Count()))
			if ips := z.IPs(); len(ips) > 0 {
				line += "  " + styles.MutedText.Render(strings.Join(ips, ", "))
			}
			b.WriteString(ansi.Truncate(line, width, "…") + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderZoneChart draws one bar per zone, labelled with the zone name.
// It returns "" when there are no zones.
func renderZoneChart(regions []topology.RegionNodes, width int) string {
	var data []barchart.BarData
	for _, r := range regions {
		for _, z := range r.Zones {
			data = append(data, barchart.BarData{
				Label: z.Name,
				Values: []barchart.BarValue{{
					Name:  r.Name + "/" + z.Name,
					Value: float64(z.Count()),
					Style: lipgloss.NewStyle().Foreground(styles.Blue),
				}},
			})
		}
	}
	if len(data) == 0 {
		return ""
	}

	bc := barchart.New(min(width, max(len(data)*8, 20)), chartH)
	bc.PushAll(data)
	bc.Draw()
	return bc.View()
}

func renderNodes(rows []view.NodeRow, width int) string {
	title := styles.Title.Render("Nodes")
	if len(rows) == 0 {
		return lipgloss.NewStyle().Padding(0, hPad).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", styles.MutedText.Render("No nodes configured.")))
	}

	headers := []string{"IP", "NAME", "REGION", "ZONE", "INSTANCE TYPE", "STATUS"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.IP, r.Name, r.Region, r.Zone, r.InstanceType, nodeStatus(r)})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	renderRow := func(row []string, style lipgloss.Style) string {
		parts := make([]string, len(row))
		for i, c := range row {
			parts[i] = style.Width(widths[i] + 2).Render(c)
		}
		return ansi.Truncate(strings.Join(parts, ""), width-hPad*2, "…")
	}

	lines := []string{title, "", renderRow(headers, styles.TableHeader)}
	for i, row := range cells {
		line := renderRow(row[:len(row)-1], styles.TableCell)
		lines = append(lines, line+styles.StatusIndicator(nodeStatus(rows[i])))
	}
	return lipgloss.NewStyle().Padding(0, hPad).Render(strings.Join(lines, "\n"))
}

func nodeStatus(r view.NodeRow) string {
	switch {
	case !r.Placed:
		return styles.NodeUnplaced
	case r.InUse:
		return styles.NodeInUse
	default:
		return styles.NodeFree
	}
}

func renderConfirm(s *view.Summary) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.WarningText.Render("Delete Configuration"),
		"",
		styles.Value.Render(DeleteConfirmText),
		"",
		renderField("Provider", s.ProviderName),
		renderField("Nodes", strconv.Itoa(s.NodeCount)),
		"",
		styles.MutedText.Render("y to delete, n to cancel"),
	)
	return styles.CardActive.Render(body)
}

func nodeCountLabel(n int) string {
	if n == 1 {
		return "1 node"
	}
	return strconv.Itoa(n) + " nodes"
}
