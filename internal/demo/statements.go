package demo

import "fmt"

const createTable = "CREATE TABLE tbl_example (id INTEGER PRIMARY KEY AUTOINCREMENT, text TEXT);"

// BootstrapStatements creates the example table and fills it with five rows.
var BootstrapStatements = []string{
	createTable,
	"INSERT INTO tbl_example(text) VALUES('a');",
	"INSERT INTO tbl_example(text) VALUES('あ');",
	"INSERT INTO tbl_example(text) VALUES('ん');",
	"INSERT INTO tbl_example(text) VALUES('朝');",
	"INSERT INTO tbl_example(text) VALUES('淺');",
}

// BootstrapQuery lists the example table in the engine's default (binary) order.
const BootstrapQuery = "SELECT * FROM tbl_example order by text;"

// CollationTexts are the values inserted by CollationStatements: case, accent,
// width and white space variants of "a" and "bb", followed by kana and kanji.
var CollationTexts = []string{
	"a", "A", "Å", "à", "Ａ", "ａ",
	"b", "B", "bb", "b b", "b  b", "b\tb", "b　b",
	"あ", "ア", "ｱ", "ん", "朝", "淺",
}

// CollationStatements creates the example table and inserts CollationTexts.
var CollationStatements = func() []string {
	var stmts = []string{createTable}
	for _, text := range CollationTexts {
		stmts = append(stmts, fmt.Sprintf("INSERT INTO tbl_example(text) VALUES('%s');", text))
	}
	return stmts
}()

// CollationQueries returns the lookups and the full listing that use the named collation.
func CollationQueries(collation string) []string {
	return []string{
		fmt.Sprintf("SELECT * FROM tbl_example WHERE text = 'a' COLLATE %s;", collation),
		fmt.Sprintf("SELECT * FROM tbl_example WHERE text = 'bb' COLLATE %s;", collation),
		fmt.Sprintf("SELECT * FROM tbl_example WHERE text = 'あ' COLLATE %s;", collation),
		fmt.Sprintf("SELECT * FROM tbl_example ORDER BY text COLLATE %s;", collation),
	}
}
