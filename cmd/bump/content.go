package bump

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/provider/contentpack"
	"github.com/saadjs/bump-cli/internal/service"
	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage per-day and per-week fruit/size content",
}

var contentDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Manage per-day content (fruit, size, daily tip)",
}

var contentWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Manage per-week content (fruit, size, image)",
}

var (
	contentDay      int
	contentWeek     int
	contentFruit    string
	contentLength   float64
	contentWeight   float64
	contentTitle    string
	contentBody     string
	contentImageURL string
	contentJSON     bool
	contentIn       string
	contentURL      string
	contentReplace  bool
)

var contentDaySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set content for a pregnancy day",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := model.DayContent{
			Day:         contentDay,
			FruitName:   contentFruit,
			LengthCm:    optionalFloat(contentLength),
			WeightGrams: optionalFloat(contentWeight),
			Title:       contentTitle,
			Body:        contentBody,
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetDayContent(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved content for day %d\n", in.Day)
			return nil
		})
	},
}

var contentDayDeleteCmd = &cobra.Command{
	Use:   "delete <day>",
	Short: "Delete content for a pregnancy day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseIntArg("day", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteDayContent(sqldb, day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted content for day %d\n", day)
			return nil
		})
	},
}

var contentDayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List per-day content",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListDayContent(sqldb)
			if err != nil {
				return err
			}
			if contentJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DAY\tFRUIT\tLENGTH_CM\tWEIGHT_G\tTITLE")
			for _, d := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n", d.Day, d.FruitName, floatCell(d.LengthCm), floatCell(d.WeightGrams), d.Title)
			}
			return nil
		})
	},
}

var contentWeekSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set content for a pregnancy week",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := model.WeekImage{
			Week:        contentWeek,
			FruitName:   contentFruit,
			LengthCm:    optionalFloat(contentLength),
			WeightGrams: optionalFloat(contentWeight),
			ImageURL:    contentImageURL,
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetWeekImage(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved content for week %d\n", in.Week)
			return nil
		})
	},
}

var contentWeekDeleteCmd = &cobra.Command{
	Use:   "delete <week>",
	Short: "Delete content for a pregnancy week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		week, err := parseIntArg("week", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteWeekImage(sqldb, week); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted content for week %d\n", week)
			return nil
		})
	},
}

var contentWeekListCmd = &cobra.Command{
	Use:   "list",
	Short: "List per-week content",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListWeekImages(sqldb)
			if err != nil {
				return err
			}
			if contentJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "WEEK\tFRUIT\tLENGTH_CM\tWEIGHT_G\tIMAGE_URL")
			for _, w := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n", w.Week, w.FruitName, floatCell(w.LengthCm), floatCell(w.WeightGrams), w.ImageURL)
			}
			return nil
		})
	},
}

var contentFruitCmd = &cobra.Command{
	Use:   "fruit <day>",
	Short: "Show the resolved fruit/size for a day and where each field came from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseIntArg("day", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			rec, err := service.FruitForDay(sqldb, day)
			if err != nil {
				return err
			}
			if contentJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Day %d (week %d)\n", rec.Day, rec.Week)
			fmt.Fprintf(out, "Fruit: %s [%s]\n", rec.FruitName, rec.Sources.FruitName)
			fmt.Fprintf(out, "Length: %.1f cm [%s]\n", rec.LengthCm, rec.Sources.LengthCm)
			fmt.Fprintf(out, "Weight: %.1f g [%s]\n", rec.WeightGrams, rec.Sources.WeightGrams)
			return nil
		})
	},
}

var contentImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import day/week content from a JSON or YAML file or URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := strings.TrimSpace(contentIn)
		src := strings.TrimSpace(contentURL)
		if in == "" && src == "" {
			return fmt.Errorf("--in or --url is required")
		}
		var bundle *service.ContentBundle
		if src != "" {
			client := &contentpack.Client{UserAgent: "bump/" + version}
			b, _, err := client.Fetch(cmd.Context(), src)
			if err != nil {
				return err
			}
			bundle = b
		} else {
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("read content file: %w", err)
			}
			b, err := service.ParseContentBundle(in, data)
			if err != nil {
				return err
			}
			bundle = b
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportContent(sqldb, *bundle, contentReplace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d day and %d week records\n", report.Days, report.Weeks)
			return nil
		})
	},
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *v)
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.AddCommand(contentDayCmd, contentWeekCmd, contentFruitCmd, contentImportCmd)
	contentDayCmd.AddCommand(contentDaySetCmd, contentDayDeleteCmd, contentDayListCmd)
	contentWeekCmd.AddCommand(contentWeekSetCmd, contentWeekDeleteCmd, contentWeekListCmd)

	contentDaySetCmd.Flags().IntVar(&contentDay, "day", 0, "Pregnancy day (1-280)")
	contentDaySetCmd.Flags().StringVar(&contentTitle, "title", "", "Tip title")
	contentDaySetCmd.Flags().StringVar(&contentBody, "body", "", "Tip text")
	_ = contentDaySetCmd.MarkFlagRequired("day")

	contentWeekSetCmd.Flags().IntVar(&contentWeek, "week", 0, "Pregnancy week (1-40)")
	contentWeekSetCmd.Flags().StringVar(&contentImageURL, "image-url", "", "Image URL")
	_ = contentWeekSetCmd.MarkFlagRequired("week")

	for _, c := range []*cobra.Command{contentDaySetCmd, contentWeekSetCmd} {
		c.Flags().StringVar(&contentFruit, "fruit", "", "Fruit name (empty falls back to week/static data)")
		c.Flags().Float64Var(&contentLength, "length", -1, "Length in cm (omit to fall back)")
		c.Flags().Float64Var(&contentWeight, "weight", -1, "Weight in grams (omit to fall back)")
	}
	for _, c := range []*cobra.Command{contentDayListCmd, contentWeekListCmd, contentFruitCmd} {
		c.Flags().BoolVar(&contentJSON, "json", false, "Print as JSON")
	}

	contentImportCmd.Flags().StringVar(&contentIn, "in", "", "Content file (.json, .yaml or .yml)")
	contentImportCmd.Flags().StringVar(&contentURL, "url", "", "Content bundle URL (http or https)")
	contentImportCmd.MarkFlagsMutuallyExclusive("in", "url")
	contentImportCmd.Flags().BoolVar(&contentReplace, "replace", false, "Clear existing content before import")
}
