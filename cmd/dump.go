package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cod3gen/zeekr-homeassistant/core/entity"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/cod3gen/zeekr-homeassistant/core/stats"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

type dumper struct {
	w    io.Writer
	yaml bool
}

func (d *dumper) table(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(d.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

// Header prints a section title
func (d *dumper) Header(title string) {
	fmt.Fprintln(d.w, title)
	fmt.Fprintln(d.w, strings.Repeat("-", len(title)))
}

// Tree prints the status tree as yaml or as table of leaves
func (d *dumper) Tree(tree state.Tree) error {
	if d.yaml {
		enc := yaml.NewEncoder(d.w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()
	}

	leaves, err := state.Flatten(tree, ".")
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(leaves))
	for path := range leaves {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	table := d.table("Path", "Value")
	for _, path := range paths {
		table.Append([]string{path, fmt.Sprint(leaves[path])})
	}
	table.Render()

	return nil
}

// Entities prints the entity states
func (d *dumper) Entities(entities []entity.Entity) {
	table := d.table("Entity", "Platform", "State")

	for _, e := range entities {
		val := "unknown"
		if s := e.State(); s != nil {
			val = fmt.Sprint(s)
		}

		table.Append([]string{e.Name(), string(e.Platform()), val})
	}

	table.Render()
}

// Stats prints the request counters
func (d *dumper) Stats(c stats.Counters) {
	table := d.table("Counter", "Today", "Total")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	table.Append([]string{"API requests", humanize.Comma(int64(c.RequestsToday)), humanize.Comma(int64(c.RequestsTotal))})
	table.Append([]string{"Remote commands", humanize.Comma(int64(c.InvokesToday)), humanize.Comma(int64(c.InvokesTotal))})
	table.Render()

	fmt.Fprintln(d.w, "Last reset:", c.LastReset)
}
