// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

type classifyCmd struct {
	plotter Plotter
}

func (cmd *classifyCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	system := flags.String("system", "", "sex determination `system`: zw or xy (required)")
	ncores := flags.Int("ncores", 1, "number of `N` worker goroutines for per-locus tests")
	inputFilename := flags.String("i", "-", "genotype matrix `file` (tsv/csv, optionally .gz, or .npy)")
	sampleIDsFilename := flags.String("sample-ids", "", "sample ID list `file`, one per line, for .npy input")
	samplesFilename := flags.String("samples", "", "sex roster `file` (id,sex; sex is F, M, or anything else for unknown)")
	outputFilename := flags.String("o", "-", "output `file` (tsv)")
	numpyFilename := flags.String("o-numpy", "", "also write numeric result columns to numpy `file`")
	plotFilename := flags.String("plot", "", "write scatter plots to html `file`")
	verbose := flags.Bool("v", false, "log per-locus details")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if flags.NArg() > 0 {
		err = fmt.Errorf("errant command line arguments after parsed flags: %v", flags.Args())
		return 2
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	classifier := Classifier{Workers: *ncores}
	classifier.System, err = ParseSystem(*system)
	if err != nil {
		return 1
	}
	if *ncores < 1 {
		err = configErrorf("ncores must be a positive integer, not %d", *ncores)
		return 1
	}
	if *samplesFilename == "" {
		err = errors.New("must specify -samples file")
		return 1
	}
	if *numpyFilename == "-" || *plotFilename == "-" {
		err = errors.New("-o-numpy and -plot need a file name; only -o can write to stdout")
		return 1
	}

	gm, err := cmd.loadGenotypes(*inputFilename, *sampleIDsFilename, stdin)
	if err != nil {
		return 1
	}
	log.Infof("read %d loci x %d samples from %s", gm.Loci(), len(gm.SampleIDs), *inputFilename)
	roster, err := loadSexRoster(*samplesFilename)
	if err != nil {
		return 1
	}

	rt, err := classifier.Classify(context.Background(), gm, roster)
	if err != nil {
		return 1
	}
	rt.Summary().Log(rt.System)
	if digest, err := rt.Digest(); err == nil {
		log.Debugf("result table digest %x", digest)
	}

	err = writeOutput(*outputFilename, stdout, rt.WriteTSV)
	if err != nil {
		return 1
	}
	if *numpyFilename != "" {
		err = writeOutput(*numpyFilename, stdout, rt.WriteNumpy)
		if err != nil {
			return 1
		}
	}
	if *plotFilename != "" {
		plotter := cmd.plotter
		if plotter == nil {
			plotter = htmlPlotter{}
		}
		err = writeOutput(*plotFilename, stdout, func(w io.Writer) error { return plotter.Plot(w, rt) })
		if err != nil {
			return 1
		}
	}
	return 0
}

func (cmd *classifyCmd) loadGenotypes(fnm, sampleIDsFilename string, stdin io.Reader) (*GenotypeMatrix, error) {
	f, err := openInput(fnm, stdin)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var gm *GenotypeMatrix
	if strings.HasSuffix(fnm, ".npy") || strings.HasSuffix(fnm, ".npy.gz") {
		if sampleIDsFilename == "" {
			return nil, errors.New("must specify -sample-ids file with .npy input")
		}
		ids, err := readLines(sampleIDsFilename)
		if err != nil {
			return nil, err
		}
		gm, err = ReadGenotypeNumpy(f, ids)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fnm, err)
		}
	} else {
		gm, err = ReadGenotypeMatrix(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fnm, err)
		}
	}
	return gm, f.Close()
}

func loadSexRoster(fnm string) (SexRoster, error) {
	f, err := os.Open(fnm)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	roster, err := ReadSexRoster(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	return roster, nil
}

// writeOutput calls write with fnm opened for writing ("-" means
// stdout).
func writeOutput(fnm string, stdout io.Writer, write func(io.Writer) error) error {
	if fnm == "-" {
		return write(stdout)
	}
	f, err := os.Create(fnm)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = write(f); err != nil {
		return fmt.Errorf("write %s: %w", fnm, err)
	}
	return f.Close()
}
