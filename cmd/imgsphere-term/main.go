// Command imgsphere-term shows a gallery manifest as an image sphere inside a text terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Carmen-Shannon/imgsphere/engine"
	"github.com/Carmen-Shannon/imgsphere/engine/loader"
	"github.com/Carmen-Shannon/imgsphere/engine/manifest"
	"github.com/Carmen-Shannon/imgsphere/engine/terminal"
	"github.com/Carmen-Shannon/imgsphere/engine/widget"
)

func main() {
	manifestPath := flag.String("manifest", "gallery.json", "gallery manifest (JSON)")
	fps := flag.Float64("fps", terminal.DefaultFPS, "frames per second")
	logPath := flag.String("log", "", "write log output to this file instead of discarding it")
	flag.Parse()

	m, err := manifest.Load(*manifestPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := m.Validate(); err != nil && !errors.Is(err, manifest.ErrNoImages) {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *manifestPath, err)
		os.Exit(1)
	}

	// Log lines would tear the screen.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	l := loader.NewLoader(loader.WithFS(os.DirFS(m.Dir())))
	defer l.Close()

	eng := engine.NewEngine()
	term, err := terminal.NewTerminal(eng, terminal.WithFPS(*fps))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sphere := widget.NewImageSphere(m.Images, append(m.Options(), widget.WithLoader(l))...)
	if err := eng.Mount(sphere, terminal.DefaultCellWidth, terminal.DefaultCellHeight); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := term.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
