// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ldavb/ldavb/lda"
)

var (
	corpusPath  string
	vocabPath   string
	runConfig   string
	numTopics   int
	algorithm   string
	alphaMode   string
	etaValue    float64
	optimizeEta bool
	seed        int64
	logLevel    string
	showTopics  int
	topTerms    int
)

var rootCmd = &cobra.Command{
	Use:   "ldavb",
	Short: "Online and batch variational-Bayes Latent Dirichlet Allocation",
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit an LDA model over a corpus",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		vocab, err := loadVocabulary(vocabPath)
		if err != nil {
			logrus.Fatalf("failed to load vocabulary: %v", err)
		}
		corpus, err := loadCorpus(corpusPath)
		if err != nil {
			logrus.Fatalf("failed to load corpus: %v", err)
		}
		logrus.Infof("loaded corpus of %d documents over %d terms", len(corpus), vocab.Len())

		mode, err := parseAlphaMode(alphaMode)
		if err != nil {
			logrus.Fatalf("invalid --alpha: %v", err)
		}

		model, err := lda.NewModel(lda.ModelConfig{
			NumTopics:   numTopics,
			NumTerms:    vocab.Len(),
			AlphaMode:   mode,
			Eta:         lda.ScalarEta(etaValue),
			OptimizeEta: optimizeEta,
			Seed:        seed,
		})
		if err != nil {
			logrus.Fatalf("failed to construct model: %v", err)
		}

		opts := mustLoadRunConfig(runConfig)
		if algorithm != "" {
			opts.Algorithm = algorithm
		}
		if err := model.Update(corpus, opts); err != nil {
			logrus.Fatalf("training failed: %v", err)
		}

		for i, topic := range model.ShowTopics(showTopics, topTerms, vocab) {
			logrus.Infof("topic %d: %s", i, topic)
		}
	},
}

func parseAlphaMode(s string) (lda.AlphaMode, error) {
	switch s {
	case "symmetric", "":
		return lda.AlphaSymmetric, nil
	case "asymmetric":
		return lda.AlphaAsymmetric, nil
	case "auto":
		return lda.AlphaAuto, nil
	default:
		return 0, &lda.ConfigurationError{Reason: "unknown alpha mode: " + s}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	trainCmd.Flags().StringVar(&corpusPath, "corpus", "", "Path to the corpus file (one document per line, termID:count pairs)")
	trainCmd.Flags().StringVar(&vocabPath, "vocab", "", "Path to the vocabulary file (one term per line)")
	trainCmd.Flags().StringVar(&runConfig, "config", "", "Path to a YAML file overriding training run parameters")
	trainCmd.Flags().IntVar(&numTopics, "topics", 10, "Number of latent topics K")
	trainCmd.Flags().StringVar(&algorithm, "algorithm", "", "Training preset: batch or online (default: online)")
	trainCmd.Flags().StringVar(&alphaMode, "alpha", "symmetric", "Document-topic prior: symmetric, asymmetric, or auto")
	trainCmd.Flags().Float64Var(&etaValue, "eta", 0.01, "Initial scalar topic-word prior")
	trainCmd.Flags().BoolVar(&optimizeEta, "optimize-eta", false, "Auto-optimize eta every M-step")
	trainCmd.Flags().Int64Var(&seed, "seed", 1, "Deterministic estimation seed")
	trainCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	trainCmd.Flags().IntVar(&showTopics, "show-topics", 10, "Number of topics to print after training")
	trainCmd.Flags().IntVar(&topTerms, "top-terms", 10, "Number of terms to print per topic")
	_ = trainCmd.MarkFlagRequired("corpus")
	_ = trainCmd.MarkFlagRequired("vocab")

	rootCmd.AddCommand(trainCmd)
}
