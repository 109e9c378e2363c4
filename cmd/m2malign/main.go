// Command m2malign is the reference driver for the many-to-many
// character alignment trainer: read a tab-separated corpus, train a
// substring-pair score table by EM, finalize it into a phoneme map,
// then apply that map back over the corpus and write annotated
// output.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/tkubota/m2malign/align"
	"github.com/tkubota/m2malign/corpusio"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a JSON config file (optional, see Config for defaults)")
		inputPath  = flag.String("input", "", "corpus file to read (required)")
		outputPath = flag.String("output", "", "annotated corpus file to write (required)")
		dumpPath   = flag.String("dump-scores", "", "if set, also write the finalized score table as JSON here")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	if *inputPath == "" || *outputPath == "" {
		logger.Fatal().Msg("both -input and -output are required")
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config")
	}

	if err := run(cfg, *inputPath, *outputPath, *dumpPath, logger); err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}
}

func run(cfg Config, inputPath, outputPath, dumpPath string, logger zerolog.Logger) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	sentences, err := corpusio.ReadSentences(in, cfg.TagCount)
	if err != nil {
		return err
	}
	logger.Info().Int("sentences", len(sentences)).Msg("corpus loaded")

	trainer, err := align.NewTrainer(sentences, cfg.TagIndex)
	if err != nil {
		return err
	}

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		diff := trainer.Update()
		logger.Info().
			Int("iteration", iter).
			Float64("diff_total", diff).
			Int("pairs", trainer.Scores().Len()).
			Msg("EM iteration")
		if diff < cfg.DiffThreshold {
			logger.Info().Int("iteration", iter).Msg("converged below threshold, stopping early")
			break
		}
	}

	model := trainer.Finalize()

	for _, sentence := range sentences {
		if err := model.MakeAlignment(sentence, cfg.TagIndex); err != nil {
			return err
		}
	}
	logger.Info().Msg("alignment applied to corpus")

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := corpusio.WriteSentences(out, sentences, cfg.TagCount); err != nil {
		return err
	}

	effectiveDumpPath := dumpPath
	if effectiveDumpPath == "" && cfg.DumpScores {
		effectiveDumpPath = outputPath + ".scores.json"
	}
	if effectiveDumpPath != "" {
		if err := dumpScores(trainer.Scores(), effectiveDumpPath); err != nil {
			return err
		}
		logger.Info().Str("path", effectiveDumpPath).Msg("score table dumped")
	}
	return nil
}

// dumpScores serializes a score table's entries to JSON via sonic,
// the driver's optional escape hatch for persisting a model — the
// core itself mandates no persistence format.
func dumpScores(scores *align.ScoreMap, path string) error {
	data, err := sonic.Marshal(scores.Entries())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
