// Command exposerviz renders a saved model to an image and summarizes its
// measures.
//
// Usage: exposerviz <model-json> [output-image] [zoom]
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"exposer/internal/exposer"
	expimage "exposer/internal/image"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <model-json> [output-image] [zoom]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nRenders the grid of a trained model with the default colour scale.\n")
		fmt.Fprintf(os.Stderr, "Default output: <model>.png, zoom 8\n")
		os.Exit(1)
	}

	modelPath := os.Args[1]
	outputPath := strings.TrimSuffix(modelPath, filepath.Ext(modelPath)) + ".png"
	if len(os.Args) >= 3 {
		outputPath = os.Args[2]
	}
	zoom := 8
	if len(os.Args) >= 4 {
		z, err := strconv.Atoi(os.Args[3])
		if err != nil || z < 1 {
			fmt.Fprintf(os.Stderr, "Error: zoom must be a positive integer, got %q\n", os.Args[3])
			os.Exit(1)
		}
		zoom = z
	}

	fmt.Printf("Loading model: %s\n", modelPath)
	e, err := exposer.Load(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	cfg := e.Config()
	fmt.Printf("Grid: grain %d, %d dimension(s) %v, %d classes, %d cells\n",
		cfg.Grain, cfg.Dimensions(), cfg.ChosenLambda, e.Classes(), e.Grid().Cells())
	fmt.Printf("Voting: %s, theta %.4f\n", cfg.VotingMode, e.Theta())

	m := e.Measures()
	for c, theta := range m.ThetaVector {
		fmt.Printf("  class %d: present in %.0f cells, theta %.3f, saturation theta %.3f\n",
			c, m.Presence[c], theta, m.SaturationThetas[c])
	}

	if cfg.Dimensions() < 2 {
		fmt.Println("Model has fewer than two dimensions, nothing to render.")
		os.Exit(0)
	}

	pixels, err := e.Render(exposer.DefaultScale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	if err := expimage.Save(outputPath, expimage.Upscale(pixels.Image(), zoom)); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", outputPath)
}
