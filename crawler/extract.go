package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The source renders every page as legacy table markup: a th/td detail
// table (class Ltbl_dt) for the case summary and column-list tables
// (class Ltbl_list) for everything else. Extraction is header-driven so
// that reordered columns degrade to missing fields instead of shifted
// ones.

func parseDoc(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// detailFields flattens every th/td pair of the detail tables into one
// label->value map.
func detailFields(doc *goquery.Document) map[string]string {
	fields := make(map[string]string)
	doc.Find("table.Ltbl_dt tr").Each(func(_ int, row *goquery.Selection) {
		ths := row.Find("th")
		tds := row.Find("td")
		ths.Each(func(i int, th *goquery.Selection) {
			if i >= tds.Length() {
				return
			}
			label := cleanText(th.Text())
			if label == "" {
				return
			}
			fields[label] = cleanText(tds.Eq(i).Text())
		})
	})
	return fields
}

// listRows returns one header-keyed map per data row of the first list
// table in the document. A document with no list table or no data rows
// yields nil, which callers treat as an empty collection.
func listRows(doc *goquery.Document) []map[string]string {
	table := doc.Find("table.Ltbl_list").First()
	if table.Length() == 0 {
		return nil
	}

	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, cleanText(th.Text()))
	})
	if len(headers) == 0 {
		table.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, cleanText(th.Text()))
		})
	}
	if len(headers) == 0 {
		return nil
	}

	var rows []map[string]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() == 0 {
			return // header row
		}
		row := make(map[string]string, len(headers))
		tds.Each(func(i int, td *goquery.Selection) {
			if i >= len(headers) {
				return
			}
			row[headers[i]] = cleanText(td.Text())
		})
		rows = append(rows, row)
	})
	return rows
}

// rowPrice coerces a named cell; nil when absent or unparseable.
func rowPrice(row map[string]string, key string) *int64 {
	if v, ok := ParsePrice(row[key]); ok {
		return &v
	}
	return nil
}

func rowArea(row map[string]string, key string) *float64 {
	if v, ok := ParseArea(row[key]); ok {
		return &v
	}
	return nil
}

func rowDate(row map[string]string, key string) string {
	if v, ok := NormalizeDate(row[key]); ok {
		return v
	}
	return ""
}
