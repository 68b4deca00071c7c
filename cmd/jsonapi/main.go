// Command jsonapi inspects flattened resource documents: lint validates a
// payload against the document model, decode re-renders it in normalized
// form.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/restkit/jsonapi"
	"github.com/restkit/jsonapi/i18n"
	"github.com/restkit/jsonapi/value"
)

var (
	flagYAML bool
	flagLang string
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	root := &cobra.Command{
		Use:           "jsonapi",
		Short:         "inspect flattened resource documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			i18n.SetLanguage(flagLang)
		},
	}
	root.PersistentFlags().BoolVar(&flagYAML, "yaml", false, "read the input document as YAML")
	root.PersistentFlags().StringVar(&flagLang, "lang", "en", "message language (en/ja)")
	root.AddCommand(lintCmd(), decodeCmd())

	if err := root.Execute(); err != nil {
		if iss, ok := jsonapi.AsIssues(err); ok {
			for _, line := range iss.Localized() {
				fmt.Fprintln(os.Stderr, color.RedString("error:"), line)
			}
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}
}

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [file]",
		Short: "validate a document against the model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args)
			if err != nil {
				return err
			}
			if doc.IsErr() {
				fmt.Fprintln(cmd.OutOrStdout(),
					color.YellowString("valid error document (%d error objects)", len(doc.Errors)))
				return nil
			}
			n := 1
			if doc.Data.IsCollection() {
				n = len(doc.Data.Items())
			}
			for _, ref := range danglingRefs(doc) {
				fmt.Fprintln(cmd.OutOrStdout(),
					color.YellowString("dangling reference: %s (identifier only, not included)", ref))
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				color.GreenString("valid document: %d primary, %d included", n, doc.Included.Len()))
			return nil
		},
	}
}

func decodeCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "re-render a document in normalized JSON form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args)
			if err != nil {
				return err
			}
			if pretty {
				if err := jsonapi.ToWriterPretty(doc, cmd.OutOrStdout()); err != nil {
					return err
				}
			} else {
				if err := jsonapi.ToWriter(doc, cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the output")
	return cmd
}

// loadDocument reads the payload from the file argument or stdin and decodes
// it as a document of full resource objects.
func loadDocument(args []string) (*jsonapi.Document[jsonapi.Object], error) {
	data, err := readInput(args)
	if err != nil {
		return nil, err
	}
	if flagYAML {
		v, err := value.FromYAML(data)
		if err != nil {
			return nil, err
		}
		return jsonapi.DocFromValue[jsonapi.Object](v)
	}
	var doc jsonapi.Document[jsonapi.Object]
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &doc, nil
}

// danglingRefs lists relationship targets that are neither included nor a
// primary resource. These inflate as stubs, which is legal but often a sign
// that an include path was forgotten during deflate.
func danglingRefs(doc *jsonapi.Document[jsonapi.Object]) []string {
	primary := map[string]struct{}{}
	collect := func(o jsonapi.Object) {
		primary[o.Kind.String()+"/"+o.ID] = struct{}{}
	}
	if doc.Data.IsCollection() {
		for _, o := range doc.Data.Items() {
			collect(o)
		}
	} else if o, ok := doc.Data.Get(); ok {
		collect(o)
	}

	seen := map[string]struct{}{}
	var refs []string
	note := func(ident jsonapi.Identifier) {
		name := ident.Kind.String() + "/" + ident.ID
		if _, ok := primary[name]; ok {
			return
		}
		if doc.Included.Has(ident) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		refs = append(refs, name)
	}
	scan := func(o jsonapi.Object) bool {
		o.Relationships.Each(func(_ value.Key, r jsonapi.Relationship) bool {
			if r.Data == nil {
				return true
			}
			if r.Data.IsCollection() {
				for _, ident := range r.Data.Items() {
					note(ident)
				}
			} else if ident, ok := r.Data.Get(); ok {
				note(ident)
			}
			return true
		})
		return true
	}
	if doc.Data.IsCollection() {
		for _, o := range doc.Data.Items() {
			scan(o)
		}
	} else if o, ok := doc.Data.Get(); ok {
		scan(o)
	}
	doc.Included.Each(scan)
	return refs
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
