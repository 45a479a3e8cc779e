package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otquery"
	"github.com/pterm/pterm"
)

func infoOp(intp *Intp, op *Op) (error, bool) {
	f := intp.font
	data := pterm.TableData{
		{"Property", "Value"},
		{"Name", f.Name()},
		{"Units per em", strconv.Itoa(f.UnitsPerEm())},
		{"Ascender", strconv.Itoa(f.Ascender())},
		{"Descender", strconv.Itoa(f.Descender())},
		{"Glyphs", strconv.Itoa(f.NumGlyphs())},
	}
	if cmap := f.Decoder().CMap(); cmap != nil {
		data = append(data, []string{"cmap format", strconv.Itoa(int(cmap.Format()))})
	}
	if intp.otf != nil {
		data = append(data, []string{"Type", otquery.FontType(intp.otf)})
		if head, ok := otquery.HeadInfo(intp.otf); ok {
			data = append(data, []string{"Revision", strconv.FormatFloat(head.FontRevision, 'f', 3, 64)})
			data = append(data, []string{"Modified", head.Modified.Format("2006-01-02")})
		}
		m := otquery.FontMetrics(intp.otf)
		data = append(data, []string{"Line gap", strconv.Itoa(int(m.LineGap))})
		data = append(data, []string{"Line height", strconv.Itoa(int(m.LineHeight()))})
		if lt := otquery.LayoutTables(intp.otf); len(lt) > 0 {
			data = append(data, []string{"Layout tables", fmt.Sprint(lt)})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func tableOp(intp *Intp, op *Op) (error, bool) {
	if intp.otf == nil {
		return errNoTables, false
	}
	if !op.noArg() {
		return tableDetail(intp.otf, op.arg(0)), false
	}
	data := pterm.TableData{{"Tag", "Offset", "Size"}}
	for _, tag := range intp.otf.TableTags() {
		off, size := intp.otf.Table(tag).Extent()
		data = append(data, []string{tag.String(), strconv.Itoa(int(off)), strconv.Itoa(int(size))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	for _, e := range intp.otf.Errors() {
		pterm.Error.Println(e.Error())
	}
	for _, w := range intp.otf.Warnings() {
		pterm.Warning.Println(w.String())
	}
	return nil, false
}

func tableDetail(otf *ot.Font, tagname string) error {
	tag := ot.T(tagname)
	t := otf.Table(tag)
	if t == nil {
		return fmt.Errorf("font has no table %q", tagname)
	}
	switch tagname {
	case "cmap":
		cmap := t.Self().AsCMap()
		data := pterm.TableData{{"Platform", "Encoding", "Format", "Selected"}}
		for _, rec := range cmap.Records {
			sel := ""
			if rec.Platform == cmap.Platform && rec.Encoding == cmap.Encoding && cmap.Subtable != nil {
				sel = "*"
			}
			data = append(data, []string{
				strconv.Itoa(int(rec.Platform)),
				strconv.Itoa(int(rec.Encoding)),
				strconv.Itoa(int(rec.Format)),
				sel,
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	case "head":
		head, _ := otquery.HeadInfo(otf)
		pterm.Printf("%+v\n", head)
	case "maxp":
		maxp, _ := otquery.MaxPInfo(otf)
		pterm.Printf("%+v\n", maxp)
	case "name":
		data := pterm.TableData{{"ID", "Value"}}
		for id, s := range otquery.NamesRange(otf) {
			data = append(data, []string{strconv.Itoa(int(id)), s})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	default:
		off, size := t.Extent()
		pterm.Printf("table %s at offset %d, %d bytes\n", tag, off, size)
	}
	return nil
}
