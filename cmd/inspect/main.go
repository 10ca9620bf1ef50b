package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"collabcast/internal"
)

// Offline dump of the membership/profile store. Opens Badger read-only,
// so it can run next to a live server process. With -serve it exposes
// the HTML inspector instead and blocks until /resume is hit.
func main() {
	dbPath := flag.String("db", "/tmp/collabcast", "Path to badger DB")
	prefix := flag.String("prefix", "member:", "Prefix to scan (member: or profile:)")
	serve := flag.Int("serve", 0, "Serve the HTML inspector on this port instead of dumping a table")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	if *serve > 0 {
		internal.Inspect(db, *serve, "/inspect", nil, nil, *prefix, nil)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Group", "User", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				table.Append(toRow(key, v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func toRow(key string, val []byte) []string {
	parts := strings.Split(key, ":")
	switch {
	case len(parts) == 3 && parts[0] == "member":
		// member:<group_id>:<user_id> -> role
		return []string{key, "MEMBERSHIP", parts[1], parts[2], string(val)}
	case len(parts) == 2 && parts[0] == "profile":
		detail := fmt.Sprintf("%d bytes", len(val))
		var p struct {
			Name   string `json:"name"`
			Avatar string `json:"avatar"`
		}
		if err := json.Unmarshal(val, &p); err == nil {
			detail = p.Name + " " + p.Avatar
		}
		return []string{key, "PROFILE", "-", parts[1], detail}
	default:
		return []string{key, "RAW", "-", "-", fmt.Sprintf("%d bytes", len(val))}
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}
