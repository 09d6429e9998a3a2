package columns_test

import (
	"fmt"

	"github.com/ajitpratap0/tabular/pkg/columns"
	"github.com/ajitpratap0/tabular/pkg/table"
	"github.com/ajitpratap0/tabular/pkg/value"
)

func Example() {
	tbl, err := table.New(
		[]string{"city", "population"},
		[]columns.ColumnType{columns.TypeText, columns.TypeInt},
		[][]any{
			{"Lyon", "522,250"},
			{"Nice", "342,669"},
			{"Lille", ""},
		})
	if err != nil {
		fmt.Println(err)
		return
	}

	casted, err := tbl.Cast()
	if err != nil {
		fmt.Println(err)
		return
	}

	pop, _ := casted.ColumnByName("population")
	fmt.Println(pop.Values())
	fmt.Println(pop.HasNulls())

	sum, _ := pop.(columns.Numeric).Sum()
	fmt.Println(sum)

	_, err = pop.(columns.Numeric).Mean()
	fmt.Println(err != nil)
	// Output:
	// [522250 342669 ]
	// true
	// 864919
	// true
}

func ExampleColumn_Counts() {
	tbl, _ := table.New([]string{"n"}, []columns.ColumnType{columns.TypeInt},
		[][]any{{1}, {1}, {2}, {3}, {3}, {3}})
	col, _ := tbl.Column(0)

	counts, _ := col.Counts()
	for _, row := range counts.Rows() {
		fmt.Println(row[0], row[1])
	}
	// Output:
	// 3 3
	// 1 2
	// 2 1
}

func ExampleColumn_Map() {
	tbl, _ := table.New([]string{"word"}, []columns.ColumnType{columns.TypeText},
		[][]any{{"a"}, {"bb"}})
	col, _ := tbl.Column(0)

	lengths, _ := col.Map(columns.Pure(func(v value.Value) value.Value {
		return value.Int(int64(len(v.String())))
	}), columns.WithType(columns.TypeInt), columns.WithName("length"))

	fmt.Println(lengths.ColumnNames(), lengths.Rows())
	fmt.Println(tbl.ColumnNames(), tbl.Rows())
	// Output:
	// [length] [[1] [2]]
	// [word] [[a] [bb]]
}

func ExampleNumeric_Median() {
	tbl, _ := table.New([]string{"n"}, []columns.ColumnType{columns.TypeInt},
		[][]any{{1}, {2}, {3}, {4}})
	col, _ := tbl.Column(0)

	median, _ := col.(columns.Numeric).Median()
	fmt.Println(median)
	// Output: 2.5
}
