package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/okian/assetlens/internal/appstore"
	"github.com/okian/assetlens/internal/asset"
	"github.com/okian/assetlens/internal/chart"
	"github.com/okian/assetlens/internal/config"
	"github.com/okian/assetlens/internal/export"
	"github.com/okian/assetlens/internal/request"
	"github.com/okian/assetlens/pkg/logger"
)

// ErrUsage marks invalid command-line input.
var ErrUsage = errors.New("usage")

const chartTitle = "资产分布"

// appEnv is the per-invocation state built in Before.
type appEnv struct {
	cfg    *config.Config
	client *asset.Client
}

func newApp(out io.Writer) *cli.App {
	env := &appEnv{}

	return &cli.App{
		Name:      "assetctl",
		Usage:     "query and render personal asset distributions",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "override base_url"},
			&cli.StringFlag{Name: "token", Usage: "override token"},
		},
		Before: func(c *cli.Context) error {
			return env.init(c)
		},
		Commands: []*cli.Command{
			{
				Name:  "distribution",
				Usage: "print a distribution as JSON",
				Flags: []cli.Flag{setFlag()},
				Action: func(c *cli.Context) error {
					d, err := env.distribution(c.Context, c.Int("set"))
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, d)
				},
			},
			{
				Name:      "detail",
				Usage:     "print the detail distribution of one category",
				ArgsUsage: "<itemName>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("%w: detail takes exactly one itemName, one of %v", ErrUsage, asset.Categories())
					}
					resp, err := env.client.GetAssetDistributionByItemName(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					d, err := asset.DecodeDistribution(resp)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, d)
				},
			},
			{
				Name:  "chart",
				Usage: "render a distribution as a PNG pie chart",
				Flags: []cli.Flag{
					setFlag(),
					&cli.BoolFlag{Name: "dark", Usage: "use the dark palette"},
					outFlag(),
				},
				Action: func(c *cli.Context) error {
					d, err := env.distribution(c.Context, c.Int("set"))
					if err != nil {
						return err
					}
					store := appstore.New(appstore.WithDark(env.cfg.DarkMode || c.Bool("dark")))
					option := chart.UseChartOption(store, chart.DistributionOption(chartTitle, d))
					defer option.Close()

					return writeFile(c.String("out"), func(w io.Writer) error {
						return chart.RenderPNG(option.Get(), w)
					})
				},
			},
			{
				Name:  "export",
				Usage: "export a distribution as XLSX",
				Flags: []cli.Flag{setFlag(), outFlag()},
				Action: func(c *cli.Context) error {
					d, err := env.distribution(c.Context, c.Int("set"))
					if err != nil {
						return err
					}
					return writeFile(c.String("out"), func(w io.Writer) error {
						return export.WriteXLSX(d, w)
					})
				},
			},
		},
	}
}

func setFlag() cli.Flag {
	return &cli.IntFlag{Name: "set", Value: 1, Usage: "distribution set: 1, 2 or 3"}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "output file"}
}

func (e *appEnv) init(c *cli.Context) error {
	cfg, err := config.Load(c.Context)
	if err != nil {
		return err
	}
	if v := c.String("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v := c.String("token"); v != "" {
		cfg.Token = v
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	rc, err := request.New(
		request.WithBaseURL(cfg.BaseURL),
		request.WithToken(cfg.Token),
		request.WithTimeout(cfg.Timeout()),
		request.WithLogger(logger.Named("request")),
	)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.client = asset.New(rc)
	return nil
}

// distribution fetches and decodes one of the three top-level sets.
func (e *appEnv) distribution(ctx context.Context, set int) (asset.Distribution, error) {
	var (
		resp *request.Response
		err  error
	)
	switch set {
	case 1:
		resp, err = e.client.GetAssetDistribution(ctx)
	case 2:
		resp, err = e.client.GetAssetDistribution2(ctx)
	case 3:
		resp, err = e.client.GetAssetDistribution3(ctx)
	default:
		return asset.Distribution{}, fmt.Errorf("%w: --set must be 1, 2 or 3, got %d", ErrUsage, set)
	}
	if err != nil {
		return asset.Distribution{}, err
	}
	return asset.DecodeDistribution(resp)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFile creates path and hands it to fn. A partial file is removed on failure.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return fn(f)
}
