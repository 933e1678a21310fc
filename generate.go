package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrlogo/internal/generator"
	"github.com/cristianadrielbraun/qrlogo/internal/logger"
	"github.com/cristianadrielbraun/qrlogo/internal/qr"
)

// defaultOutput is the file name the one-shot command writes to.
const defaultOutput = "facebook qr.png"

type generateFlags struct {
	url, logo, out string
	fg, bg, ec     string
	shape          string
	version        int
	logoSize       int
	border         int
	boxSize        int
}

func generateCmd(configPath *string) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write one QR code, optionally with a logo, to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(*configPath)
			if err != nil {
				return err
			}
			req, err := generator.DefaultRequest(cfg.QR)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &req); err != nil {
				return err
			}

			gen := generator.New(logger.New("generator"), cfg.Verify.Enabled)
			out, err := gen.Generate(context.Background(), req)
			if err != nil {
				return err
			}
			if err := os.WriteFile(f.out, out.PNG, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", f.out, err)
			}

			fmt.Printf("wrote %s (%dx%d px, version %d)\n", f.out, out.Side, out.Side, out.Version)
			if out.Scannable != nil && !*out.Scannable {
				fmt.Fprintln(os.Stderr, "warning: the logo makes the code unreadable, try a smaller logo or --ec H")
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.url, "url", "u", "", "Data to encode (required)")
	fl.StringVarP(&f.logo, "logo", "l", "", "Logo image to overlay (png, jpg, gif, webp, bmp, svg)")
	fl.StringVarP(&f.out, "out", "o", defaultOutput, "Output PNG path")
	fl.StringVar(&f.fg, "fg", "", "Foreground color, hex")
	fl.StringVar(&f.bg, "bg", "", "Background color, hex or 'transparent'")
	fl.StringVar(&f.ec, "ec", "", "Error correction level: L, M, Q or H")
	fl.StringVar(&f.shape, "shape", "", "Module shape: square, circle, liquid, chain, hstripe, vstripe")
	fl.IntVar(&f.version, "version", 0, "QR version 1-40")
	fl.IntVar(&f.logoSize, "logo-size", 0, "Logo side in pixels")
	fl.IntVar(&f.border, "border", -1, "Border in modules")
	fl.IntVar(&f.boxSize, "box-size", 0, "Pixels per module")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

// apply overrides config defaults with the flags the user set.
func (f *generateFlags) apply(cmd *cobra.Command, req *generator.Request) error {
	var err error
	req.QR.Data = f.url
	changed := cmd.Flags().Changed

	if changed("fg") {
		if req.QR.Foreground, err = qr.ParseHexColor(f.fg); err != nil {
			return err
		}
	}
	if changed("bg") {
		if req.QR.Background, err = qr.ParseHexColor(f.bg); err != nil {
			return err
		}
	}
	if changed("ec") {
		if req.QR.Level, err = qr.ParseECLevel(f.ec); err != nil {
			return err
		}
	}
	if changed("shape") {
		if req.QR.Shape, err = qr.ParseShape(f.shape); err != nil {
			return err
		}
	}
	if changed("version") {
		req.QR.Version = f.version
	}
	if changed("border") {
		req.QR.Border = f.border
	}
	if changed("box-size") {
		req.QR.BoxSize = f.boxSize
	}
	if changed("logo-size") {
		req.LogoSize = f.logoSize
	}

	if f.logo != "" {
		data, err := os.ReadFile(f.logo)
		if err != nil {
			return fmt.Errorf("read logo: %w", err)
		}
		req.Logo = &generator.Logo{Filename: filepath.Base(f.logo), Data: data}
	}
	return nil
}
