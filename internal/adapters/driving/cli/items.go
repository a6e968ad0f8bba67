package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
)

var (
	itemKind  string
	itemTopic string

	criticismDetail   string
	criticismSource   string
	criticismSeverity string
	criticismTag      string
	criticismNotes    []string
	criticismFile     string

	memberRole   string
	memberSector string
	memberPhone  string
	memberEmail  string
	memberLevel  string

	updateFields []string
	setAnswer    string
	removeAnswer int
	filterQuery  string
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage content items",
	Long: `List, add, update, and remove content items of a kind.

Kinds: qa, criticism, document, member. Every kind except member is
scoped to a topic, selected with --topic.`,
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items of a kind",
	RunE:  runItemsList,
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <title-or-name>",
	Short: "Add an item",
	Long: `Add a content item. The positional argument is the kind's key
field: the criticism title or the member name. QA entries and
documents are created by the backend pipeline and cannot be added
here; documents enter through the uploads commands.`,
	Args: cobra.ExactArgs(1),
	RunE: runItemsAdd,
}

var itemsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an item",
	Long: `Apply one or more field=value updates to an item, for example:

  briefdesk items update 42 --kind criticism --topic Economy --set status=addressed

Q&A answers are edited one at a time, by position:

  briefdesk items update 7 --kind qa --topic Economy --set-answer 1="Shrinking"
  briefdesk items update 7 --kind qa --topic Economy --remove-answer 0`,
	Args: cobra.ExactArgs(1),
	RunE: runItemsUpdate,
}

var itemsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemsRemove,
}

func init() {
	itemsCmd.PersistentFlags().StringVarP(&itemKind, "kind", "k", "", "content kind: qa, criticism, document, member")
	itemsCmd.PersistentFlags().StringVarP(&itemTopic, "topic", "t", "", "topic the items belong to")

	itemsAddCmd.Flags().StringVar(&criticismDetail, "detail", "", "criticism detail text")
	itemsAddCmd.Flags().StringVar(&criticismSource, "source", "", "criticism source")
	itemsAddCmd.Flags().StringVar(&criticismSeverity, "severity", domain.SeverityMedium, "criticism severity: high, medium, low")
	itemsAddCmd.Flags().StringVar(&criticismTag, "tag", domain.TagCriticism, "criticism tag: criticism, question, accusation")
	itemsAddCmd.Flags().StringArrayVar(&criticismNotes, "note", nil, "criticism response note (repeatable)")
	itemsAddCmd.Flags().StringVar(&memberRole, "role", "", "member role")
	itemsAddCmd.Flags().StringVar(&memberSector, "sector", "", "member sector")
	itemsAddCmd.Flags().StringVar(&memberPhone, "phone", "", "member phone")
	itemsAddCmd.Flags().StringVar(&memberEmail, "email", "", "member email")
	itemsAddCmd.Flags().StringVar(&memberLevel, "level", domain.LevelMember, "member level: leadership, senior, member")
	itemsAddCmd.Flags().StringVar(&criticismFile, "file", "", "staged upload id answering the criticism")

	itemsListCmd.Flags().StringVarP(&filterQuery, "filter", "f", "", "substring match on the key field")
	itemsUpdateCmd.Flags().StringArrayVar(&updateFields, "set", nil, "field=value update (repeatable)")
	itemsUpdateCmd.Flags().StringVar(&setAnswer, "set-answer", "", "replace a qa answer, as index=text")
	itemsUpdateCmd.Flags().IntVar(&removeAnswer, "remove-answer", -1, "drop the qa answer at this index")

	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsAddCmd)
	itemsCmd.AddCommand(itemsUpdateCmd)
	itemsCmd.AddCommand(itemsRemoveCmd)
	rootCmd.AddCommand(itemsCmd)
}

// loadTopic maps a kind to its collection scope. Members are a
// single global collection.
func loadTopic(kind domain.Kind) string {
	if kind == domain.KindMember {
		return "members"
	}
	return itemTopic
}

func resolveStore() (driving.ContentService, error) {
	kind := domain.Kind(strings.ToLower(strings.TrimSpace(itemKind)))
	switch kind {
	case domain.KindQA, domain.KindCriticism, domain.KindDocument, domain.KindMember:
		return contentStore(kind)
	case "":
		return nil, errors.New("--kind is required")
	default:
		return nil, fmt.Errorf("unknown kind %q", itemKind)
	}
}

func runItemsList(cmd *cobra.Command, _ []string) error {
	store, err := resolveStore()
	if err != nil {
		return err
	}
	if store.Kind() != domain.KindMember && itemTopic == "" {
		return errors.New("--topic is required for this kind")
	}

	store.Load(cmd.Context(), loadTopic(store.Kind()))
	items := store.Filter(filterQuery)
	if len(items) == 0 {
		cmd.Println("No items.")
		printStatus(cmd)
		return nil
	}

	for _, item := range items {
		cmd.Printf("  %-12s %s\n", item.ID, describeItem(item))
	}
	return nil
}

func runItemsAdd(cmd *cobra.Command, args []string) error {
	store, err := resolveStore()
	if err != nil {
		return err
	}

	draft := domain.Item{Topic: itemTopic, Kind: store.Kind()}
	switch store.Kind() {
	case domain.KindCriticism:
		draft.Criticism = &domain.CriticismFields{
			Title:    args[0],
			Detail:   criticismDetail,
			Source:   criticismSource,
			Severity: criticismSeverity,
			Tag:      criticismTag,
			Status:   domain.StatusPending,
			Mode:     domain.AnswerText,
			Notes:    criticismNotes,
		}
	case domain.KindMember:
		draft.Topic = "members"
		draft.Member = &domain.MemberFields{
			Name:   args[0],
			Role:   memberRole,
			Sector: memberSector,
			Phone:  memberPhone,
			Email:  memberEmail,
			Level:  memberLevel,
			Status: domain.MemberActive,
		}
	default:
		return fmt.Errorf("%s items cannot be added from here", store.Kind())
	}

	if criticismFile != "" {
		return addWithStagedFile(cmd, store, draft)
	}

	item, err := store.Add(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("add %s: %w", store.Kind(), err)
	}
	flush()

	cmd.Printf("Added %s %s.\n", store.Kind(), item.ID)
	printStatus(cmd)
	return nil
}

// addWithStagedFile creates a criticism answered by a staged document
// instead of text notes. The staged entry is consumed on success.
func addWithStagedFile(cmd *cobra.Command, store driving.ContentService, draft domain.Item) error {
	if store.Kind() != domain.KindCriticism {
		return errors.New("--file only applies to criticisms")
	}
	if services.Uploads == nil {
		return errors.New("upload service not configured")
	}

	var entry *domain.PendingUpload
	for _, staged := range services.Uploads.List() {
		if staged.ID == criticismFile {
			s := staged
			entry = &s
			break
		}
	}
	if entry == nil {
		return fmt.Errorf("no staged upload %q", criticismFile)
	}

	draft.Criticism.Mode = domain.AnswerDocument
	draft.Criticism.Notes = nil

	item, err := store.AddWithFile(cmd.Context(), draft, *entry)
	if err != nil {
		return fmt.Errorf("add %s: %w", store.Kind(), err)
	}
	if err := services.Uploads.Unstage(entry.ID); err != nil {
		cmd.Printf("Warning: could not unstage %s: %v\n", entry.ID, err)
	}
	flush()

	cmd.Printf("Added %s %s answered by %s.\n", store.Kind(), item.ID, entry.DisplayName)
	printStatus(cmd)
	return nil
}

func runItemsUpdate(cmd *cobra.Command, args []string) error {
	store, err := resolveStore()
	if err != nil {
		return err
	}
	patch := driving.Patch{}
	for _, pair := range updateFields {
		field, value, ok := strings.Cut(pair, "=")
		if !ok || field == "" {
			return fmt.Errorf("invalid --set %q, want field=value", pair)
		}
		patch[field] = value
	}
	if err := addAnswerEdits(store.Kind(), patch); err != nil {
		return err
	}
	if len(patch) == 0 {
		return errors.New("at least one --set, --set-answer, or --remove-answer is required")
	}

	// Updates need the item present locally, so load first.
	store.Load(cmd.Context(), loadTopic(store.Kind()))

	if err := store.Update(cmd.Context(), args[0], patch); err != nil {
		return fmt.Errorf("update %s %s: %w", store.Kind(), args[0], err)
	}
	flush()

	cmd.Printf("Updated %s %s.\n", store.Kind(), args[0])
	printStatus(cmd)
	return nil
}

func runItemsRemove(cmd *cobra.Command, args []string) error {
	store, err := resolveStore()
	if err != nil {
		return err
	}

	store.Load(cmd.Context(), loadTopic(store.Kind()))

	if err := store.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("remove %s %s: %w", store.Kind(), args[0], err)
	}
	flush()

	cmd.Printf("Removed %s %s.\n", store.Kind(), args[0])
	printStatus(cmd)
	return nil
}

// addAnswerEdits folds the per-answer flags into the patch with the
// shapes the backend expects: "answer" carries {"index","value"},
// "removeAnswer" carries the bare index.
func addAnswerEdits(kind domain.Kind, patch driving.Patch) error {
	if setAnswer == "" && removeAnswer < 0 {
		return nil
	}
	if kind != domain.KindQA {
		return errors.New("--set-answer and --remove-answer only apply to qa entries")
	}

	if setAnswer != "" {
		idxStr, text, ok := strings.Cut(setAnswer, "=")
		idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
		if !ok || err != nil || idx < 0 {
			return fmt.Errorf("invalid --set-answer %q, want index=text", setAnswer)
		}
		patch["answer"] = map[string]any{"index": idx, "value": text}
	}
	if removeAnswer >= 0 {
		patch["removeAnswer"] = removeAnswer
	}
	return nil
}

// describeItem renders the one-line listing for an item.
func describeItem(item domain.Item) string {
	switch item.Kind {
	case domain.KindQA:
		if item.QA != nil {
			return item.QA.Question
		}
	case domain.KindCriticism:
		if item.Criticism != nil {
			return fmt.Sprintf("%s (%s, %s)", item.Criticism.Title, item.Criticism.Severity, item.Criticism.Status)
		}
	case domain.KindDocument:
		if item.Document != nil {
			return item.Document.FileName
		}
	case domain.KindMember:
		if item.Member != nil {
			return fmt.Sprintf("%s (%s)", item.Member.Name, item.Member.Role)
		}
	}
	return "(empty)"
}
