package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caliber-ui/quotation-app/internal"
	"github.com/caliber-ui/quotation-app/internal/catalog"
	"github.com/caliber-ui/quotation-app/internal/config"
	"github.com/caliber-ui/quotation-app/internal/pipeline"
	"github.com/caliber-ui/quotation-app/internal/rate"
	"github.com/caliber-ui/quotation-app/internal/resolve"
	"github.com/caliber-ui/quotation-app/internal/standards"
	"github.com/caliber-ui/quotation-app/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "reference:load":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		kind := fs.String("kind", "", "catalog|standards|synonyms|grades|gross")
		file := fs.String("file", "", "json file path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*kind) == "" {
			must(fmt.Errorf("--kind is required"))
		}
		path := *file
		if strings.TrimSpace(path) == "" {
			path = defaultReferencePath(cfg, *kind)
		}
		raw, err := os.ReadFile(path)
		must(err)
		must(validateReference(*kind, raw))
		hash := catalog.ContentHash(raw)
		must(db.UpsertReferenceFile(*kind, filepath.Base(path), hash, raw))
		fmt.Printf("loaded %s from %s hash=%s\n", *kind, path, hash[:12])
	case "enquiry:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "enquiry file (.xlsx .pdf .html .json .txt)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		resolver, err := loadResolver(db, cfg)
		must(err)
		content, err := os.ReadFile(*input)
		must(err)
		p := &pipeline.Processor{DB: db, Resolver: resolver}
		res, err := p.ProcessFile(filepath.Base(*input), content)
		must(err)
		fmt.Printf("processed enquiry id=%d lines=%d resolved=%d skipped=%d\n",
			res.EnquiryID, res.Lines, res.Resolved, res.Skipped)
	case "quote:rows":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		enquiryID := fs.Int("enquiryId", 0, "enquiry id")
		_ = fs.Parse(os.Args[2:])
		if *enquiryID == 0 {
			must(fmt.Errorf("--enquiryId is required"))
		}
		rows, err := db.GetQuoteRows(*enquiryID)
		must(err)
		for _, row := range rows {
			fmt.Printf("%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				row.Sequence, row.ItemCode, row.Description,
				row.DimensionStandards, row.Grades, row.Finishes, row.Qty)
		}
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		enquiryID := fs.Int("enquiryId", 0, "enquiry id")
		out := fs.String("out", "", "output xlsx path")
		customer := fs.String("customer", "", "customer name")
		intro := fs.String("intro", "", "intro line")
		note := fs.String("note", "", "main note")
		_ = fs.Parse(os.Args[2:])
		if *enquiryID == 0 {
			must(fmt.Errorf("--enquiryId is required"))
		}
		rows, err := db.GetQuoteRows(*enquiryID)
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no rows for enquiryId=%d", *enquiryID))
		}
		now := time.Now()
		number, err := db.NextQuotationNumber(now)
		must(err)
		if strings.TrimSpace(*customer) != "" {
			must(db.SaveValue("customer", *customer))
		}
		q := pipeline.Quotation{
			Number:   number,
			Date:     now.Format("02/01/2006"),
			Intro:    *intro,
			Rows:     rows,
			MainNote: *note,
		}
		if strings.TrimSpace(*customer) != "" {
			q.Header = append(q.Header, pipeline.HeaderField{Label: "Customer", Value: *customer})
		}
		path := *out
		if strings.TrimSpace(path) == "" {
			path = filepath.Join(cfg.OutputDir, strings.ReplaceAll(number, "/", "-")+".xlsx")
		}
		must(os.MkdirAll(filepath.Dir(path), 0o755))
		must(pipeline.ExportQuoteXLSX(q, path))
		fmt.Printf("exported quotation %s rows=%d to %s\n", number, len(rows), path)
	case "rate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		screwType := fs.String("type", "", "catalog screw type")
		dia := fs.String("dia", "", "diameter label, e.g. M10 or 3/8")
		length := fs.String("length", "", "length, empty for length-agnostic rows")
		dim := fs.String("dim", "metric", "metric|inches")
		count := fs.Int("count", 1, "pieces per set")
		qty := fs.Int("qty", 1, "number of sets")
		ratePerKg := fs.Float64("ratePerKg", 0, "rate per kg")
		_ = fs.Parse(os.Args[2:])
		if *screwType == "" || *dia == "" {
			must(fmt.Errorf("--type and --dia are required"))
		}
		entries, err := loadCatalog(db)
		must(err)
		matched := rate.EntriesForType(*screwType, entries)
		if len(matched) == 0 {
			must(fmt.Errorf("unknown type: %s", *screwType))
		}
		var lengthPtr *string
		if strings.TrimSpace(*length) != "" {
			lengthPtr = length
		}
		value, ok := rate.FindRate(matched, lengthPtr, *dia, *dim)
		if !ok {
			must(fmt.Errorf("no rate for type=%s dia=%s length=%s", *screwType, *dia, *length))
		}
		weight := rate.WeightPerPiece(value, matched[0].Unit)
		quote := rate.Quote(weight, *count, *qty, *ratePerKg)
		fmt.Printf("weight/pc=%.4f kg total=%.4f kg price=%.2f\n",
			quote.WeightPerPiece, quote.TotalWeight, quote.TotalPrice)
	case "combo":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		text := fs.String("text", "", "combo description, e.g. '1 stud 2 nuts 2 washers'")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*text) == "" {
			must(fmt.Errorf("--text is required"))
		}
		for _, comp := range rate.ParseCombo(*text) {
			fmt.Printf("%s x%d\n", comp.Type, comp.Count)
		}
	case "gross":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		boltType := fs.String("type", "hex bolt", "bolt type")
		dia := fs.Float64("dia", 0, "diameter in mm")
		length := fs.Float64("length", 0, "length in mm")
		added := fs.Float64("added", 0, "added mm, overrides gross table lookup")
		_ = fs.Parse(os.Args[2:])
		if *dia == 0 {
			must(fmt.Errorf("--dia is required"))
		}
		addedMM := *added
		if addedMM == 0 && *length > 0 {
			raw, _, err := db.GetReferenceFile("gross")
			must(err)
			if raw != nil {
				rows, err := rate.LoadGrossRows(raw)
				must(err)
				if row, ok := rate.FindGrossRow(rows, *dia, *length); ok {
					addedMM = row.AddedMM
				}
			}
		}
		fmt.Printf("gross weight=%.4f kg\n", rate.GrossWeight(*boltType, *dia, addedMM))
	case "quote:number":
		number, err := db.NextQuotationNumber(time.Now())
		must(err)
		fmt.Println(number)
	default:
		usage()
		os.Exit(1)
	}
}

var referenceKinds = []string{"catalog", "standards", "synonyms", "grades", "gross"}

func defaultReferencePath(cfg config.Config, kind string) string {
	switch kind {
	case "catalog":
		return cfg.CatalogFile
	case "standards":
		return cfg.StandardsFile
	case "synonyms":
		return cfg.SynonymsFile
	case "grades":
		return cfg.GradesFile
	case "gross":
		return cfg.GrossFile
	}
	return ""
}

func validateReference(kind string, raw []byte) error {
	switch kind {
	case "catalog":
		_, err := catalog.Normalize(raw)
		return err
	case "standards":
		_, err := standards.Build(raw)
		return err
	case "synonyms":
		_, err := resolve.LoadSynonyms(raw)
		return err
	case "grades":
		_, err := resolve.LoadGradeVocabulary(raw)
		return err
	case "gross":
		_, err := rate.LoadGrossRows(raw)
		return err
	}
	return fmt.Errorf("unsupported kind: %s (want %s)", kind, strings.Join(referenceKinds, "|"))
}

func loadResolver(db *storage.DB, cfg config.Config) (*resolve.Resolver, error) {
	rawStandards, _, err := db.GetReferenceFile("standards")
	if err != nil {
		return nil, err
	}
	if rawStandards == nil {
		return nil, fmt.Errorf("standards not loaded, run reference:load --kind=standards first")
	}
	idx, err := standards.Build(rawStandards)
	if err != nil {
		return nil, err
	}

	resolver := &resolve.Resolver{
		Index:           idx,
		GradeThreshold:  cfg.GradeMatchThreshold,
		FinishThreshold: cfg.FinishMatchThreshold,
	}

	if raw, _, err := db.GetReferenceFile("synonyms"); err != nil {
		return nil, err
	} else if raw != nil {
		syn, err := resolve.LoadSynonyms(raw)
		if err != nil {
			return nil, err
		}
		resolver.Synonyms = syn
	}
	if raw, _, err := db.GetReferenceFile("grades"); err != nil {
		return nil, err
	} else if raw != nil {
		grades, err := resolve.LoadGradeVocabulary(raw)
		if err != nil {
			return nil, err
		}
		resolver.Grades = grades
	}
	return resolver, nil
}

func loadCatalog(db *storage.DB) ([]internal.CatalogEntry, error) {
	raw, _, err := db.GetReferenceFile("catalog")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("catalog not loaded, run reference:load --kind=catalog first")
	}
	return catalog.Normalize(raw)
}

func usage() {
	fmt.Println("usage: quotation <command>")
	fmt.Println("commands:")
	fmt.Println("  reference:load --kind=catalog|standards|synonyms|grades|gross [--file=path.json]")
	fmt.Println("  enquiry:process --input=enquiry.xlsx")
	fmt.Println("  quote:rows --enquiryId=1")
	fmt.Println("  export:xlsx --enquiryId=1 [--out=./out/quote.xlsx] [--customer=...] [--intro=...] [--note=...]")
	fmt.Println("  rate --type='Hex Bolt' --dia=M10 [--length=50] [--dim=metric|inches] [--count=1] [--qty=1] [--ratePerKg=0]")
	fmt.Println("  combo --text='1 stud 2 nuts 2 washers'")
	fmt.Println("  gross [--type='hex bolt'] --dia=10 [--length=50] [--added=7]")
	fmt.Println("  quote:number")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
