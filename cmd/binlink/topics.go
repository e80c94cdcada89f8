package binlink

import (
	"embed"
	"os"

	"github.com/arthur-debert/binlink/pkg/cobrax/topics"
	"github.com/arthur-debert/binlink/pkg/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// topicsDir is the embedded directory holding help topics.
const topicsDir = "topics"

// initTopics installs the topic-aware help command on rootCmd.
func initTopics(rootCmd *cobra.Command) (*topics.TopicManager, error) {
	renderer := topics.NewGlamourRenderer()
	if os.Getenv("NO_COLOR") != "" || !ui.IsTerminal(os.Stdout) {
		renderer = topics.NewPlainGlamourRenderer()
	}

	return topics.InitializeWithOptions(rootCmd, afero.FromIOFS{FS: topicsFS}, topicsDir, topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   renderer,
	})
}
