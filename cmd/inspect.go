package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spaghettifunk/objscene/engine/assets/loaders"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/urfave/cli"
)

type inspectResult struct {
	path  string
	stats loaders.ObjStats
	size  [3]float32
	err   error
}

// Inspect parses every OBJ file given as argument and prints a statistics table.
func Inspect(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() == 0 {
		return errors.New("missing obj file argument")
	}

	opts := cfg.Loader.ObjOptions()
	if ctx.Bool("lenient") {
		opts = append(opts, loaders.WithLenientParsing())
	}

	results := make([]inspectResult, 0, ctx.NArg())
	failed := 0
	for _, path := range ctx.Args() {
		res := inspectFile(path, opts)
		if res.err != nil {
			core.LogError("%s: %s", path, res.err.Error())
			failed++
		}
		results = append(results, res)
	}

	fmt.Fprint(ctx.App.Writer, displayInspectResults(results))

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
	}
	return nil
}

func inspectFile(path string, opts []loaders.ObjOption) inspectResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return inspectResult{path: path, err: err}
	}
	md, stats, err := loaders.ParseObjWithStats(string(data), opts...)
	if err != nil {
		return inspectResult{path: path, stats: stats, err: err}
	}
	size := md.Extents.Size()
	return inspectResult{path: path, stats: stats, size: [3]float32{size.X, size.Y, size.Z}}
}

func displayInspectResults(results []inspectResult) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"File", "v", "vt", "vn", "Faces", "Skipped", "Triangles", "Vertices", "Welded", "Size"})

	var triangles, vertices int
	for _, res := range results {
		if res.err != nil {
			table.Append([]string{res.path, "-", "-", "-", "-", "-", "-", "-", "-", "error"})
			continue
		}
		s := res.stats
		triangles += s.Triangles
		vertices += s.Vertices
		table.Append([]string{
			res.path,
			fmt.Sprintf("%d", s.Positions),
			fmt.Sprintf("%d", s.TexCoords),
			fmt.Sprintf("%d", s.Normals),
			fmt.Sprintf("%d", s.Faces),
			fmt.Sprintf("%d", s.SkippedFaces+s.TruncatedFaces),
			fmt.Sprintf("%d", s.Triangles),
			fmt.Sprintf("%d", s.Vertices),
			fmt.Sprintf("%d", s.WeldedCorners),
			fmt.Sprintf("%.2f x %.2f x %.2f", res.size[0], res.size[1], res.size[2]),
		})
	}
	table.SetFooter([]string{"Total", "", "", "", "", "", fmt.Sprintf("%d", triangles), fmt.Sprintf("%d", vertices), "", ""})

	table.Render()
	return buf.String()
}
