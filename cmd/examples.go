package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vocabtreasury/vocabtreasury/internal/entity"
	"github.com/vocabtreasury/vocabtreasury/internal/store"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Browse and manage your example collection",
}

var examplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of your examples, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		query := url.Values{}
		page, _ := cmd.Flags().GetInt64("page")
		perPage, _ := cmd.Flags().GetInt64("per-page")
		query.Set("page", strconv.FormatInt(page, 10))
		query.Set("per_page", strconv.FormatInt(perPage, 10))
		for flag, param := range searchFilterParams {
			if value, _ := cmd.Flags().GetString(flag); value != "" {
				query.Set(param, value)
			}
		}

		if err := app.store.FetchExamples(cmd.Context(), app.client.ExamplesURL(query)); err != nil {
			return app.fail(cmd, err)
		}

		renderExamplesPage(cmd, app.store.State())
		return nil
	},
}

var examplesNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Add a new example to your collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		draft := entity.ExampleDraft{}
		draft.SourceLanguage, _ = cmd.Flags().GetString("source-language")
		draft.NewWord, _ = cmd.Flags().GetString("new-word")
		draft.Content, _ = cmd.Flags().GetString("content")
		draft.ContentTranslation, _ = cmd.Flags().GetString("translation")
		if err := draft.Validate(); err != nil {
			return app.validationAlert(cmd, err.Error())
		}

		if err := app.store.CreateExample(cmd.Context(), draft); err != nil {
			return app.fail(cmd, err)
		}
		app.store.NotifyUser("you have added a new example to your collection")
		app.renderAlerts(cmd)

		// Creating leaves the slice holding only the new item; re-fetch the
		// first page to restore full page content.
		query := url.Values{}
		query.Set("page", "1")
		if err := app.store.FetchExamples(cmd.Context(), app.client.ExamplesURL(query)); err != nil {
			return app.fail(cmd, err)
		}
		renderExamplesPage(cmd, app.store.State())
		return nil
	},
}

var examplesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of one example",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid example id %q", args[0])
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		patch := entity.ExamplePatch{}
		if cmd.Flags().Changed("source-language") {
			value, _ := cmd.Flags().GetString("source-language")
			patch.SourceLanguage = &value
		}
		if cmd.Flags().Changed("new-word") {
			value, _ := cmd.Flags().GetString("new-word")
			patch.NewWord = &value
		}
		if cmd.Flags().Changed("content") {
			value, _ := cmd.Flags().GetString("content")
			patch.Content = &value
		}
		if cmd.Flags().Changed("translation") {
			value, _ := cmd.Flags().GetString("translation")
			patch.ContentTranslation = &value
		}
		if patch.Empty() {
			return app.validationAlert(cmd, "nothing to update, set at least one field flag")
		}

		if err := app.store.EditExample(cmd.Context(), id, patch); err != nil {
			return app.fail(cmd, err)
		}

		app.store.NotifyUser(fmt.Sprintf("you have edited example %d", id))
		app.renderAlerts(cmd)
		return nil
	},
}

var examplesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one example from your collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid example id %q", args[0])
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		if err := app.store.DeleteExample(cmd.Context(), id); err != nil {
			return app.fail(cmd, err)
		}

		app.store.NotifyUser(fmt.Sprintf("you have deleted example %d", id))
		app.renderAlerts(cmd)
		return nil
	},
}

// searchFilterParams maps list command flags to the backend's search
// query parameters.
var searchFilterParams = map[string]string{
	"source-language": "source_language",
	"new-word":        "new_word",
	"content":         "content",
	"translation":     "content_translation",
}

func renderExamplesPage(cmd *cobra.Command, state store.State) {
	entities := store.SelectExampleEntities(state)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLANGUAGE\tNEW WORD\tEXAMPLE\tTRANSLATION")
	for _, id := range store.SelectExampleIDs(state) {
		item := entities[id]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			item.ID, item.SourceLanguage, item.NewWord, item.Content, item.ContentTranslation)
	}
	_ = tw.Flush()

	meta := store.SelectExamplesMeta(state)
	if meta.Page != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d items in total)\n",
			*meta.Page, *meta.TotalPages, *meta.TotalItems)
	}
	links := store.SelectExamplesLinks(state)
	if links.Next != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "more: --page %s\n", pageParamOf(links.Next))
	}
}

// pageParamOf pulls the page number out of a navigation link for the
// "more" hint.
func pageParamOf(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return "?"
	}
	if page := parsed.Query().Get("page"); page != "" {
		return page
	}
	return "?"
}

func init() {
	rootCmd.AddCommand(examplesCmd)
	examplesCmd.AddCommand(examplesListCmd, examplesNewCmd, examplesEditCmd, examplesDeleteCmd)

	examplesListCmd.Flags().Int64("page", 1, "page number to fetch")
	examplesListCmd.Flags().Int64("per-page", 10, "items per page")
	examplesListCmd.Flags().String("source-language", "", "filter by source language")
	examplesListCmd.Flags().String("new-word", "", "filter by new word")
	examplesListCmd.Flags().String("content", "", "filter by example content")
	examplesListCmd.Flags().String("translation", "", "filter by translation")

	examplesNewCmd.Flags().String("source-language", "", "language of the source sentence")
	examplesNewCmd.Flags().String("new-word", "", "the word this example illustrates")
	examplesNewCmd.Flags().String("content", "", "the source sentence")
	examplesNewCmd.Flags().String("translation", "", "translation of the source sentence")
	_ = examplesNewCmd.MarkFlagRequired("new-word")
	_ = examplesNewCmd.MarkFlagRequired("content")

	examplesEditCmd.Flags().String("source-language", "", "new source language")
	examplesEditCmd.Flags().String("new-word", "", "new word")
	examplesEditCmd.Flags().String("content", "", "new source sentence")
	examplesEditCmd.Flags().String("translation", "", "new translation")
}
