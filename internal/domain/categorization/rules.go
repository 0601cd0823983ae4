package categorization

// KeywordGroup ties a category name to the merchant names and keywords that
// select it. Groups are evaluated in slice order and the first group with a
// matching keyword wins, so broader groups go later.
type KeywordGroup struct {
	Category string
	Keywords []string
}

const (
	FallbackExpenseCategory = "Other Expenses"
	FallbackIncomeCategory  = "Other Income"
)

// ExpenseGroups is the built-in ordered rule set for expense descriptions.
// Keywords mix Romanian and English merchant names and terms since the
// statements come from both Romanian and international banks.
var ExpenseGroups = []KeywordGroup{
	{Category: "Groceries", Keywords: []string{
		"kaufland", "lidl", "carrefour", "auchan", "mega image", "profi",
		"penny", "selgros", "metro", "cora", "la doi pasi", "alimentara",
		"supermarket", "grocery", "groceries", "market",
	}},
	{Category: "Dining", Keywords: []string{
		"restaurant", "pizzerie", "pizza", "kfc", "mcdonald", "mc donald",
		"glovo", "tazz", "bolt food", "foodpanda", "starbucks", "ted's coffee",
		"5 to go", "cafenea", "cafea", "coffee", "bistro", "shaorma", "covrig",
	}},
	{Category: "Transportation", Keywords: []string{
		"omv", "petrom", "rompetrol", "mol ", "lukoil", "socar",
		"uber", "bolt.eu", "bolt ro", "taxi", "stb", "metrorex", "cfr",
		"autostrada", "rovinieta", "parcare", "parking", "benzinarie",
		"fuel", "gas station",
	}},
	{Category: "Housing", Keywords: []string{
		"chirie", "rent", "rata", "ipoteca", "mortgage", "intretinere",
		"asociatia de proprietari",
	}},
	{Category: "Utilities", Keywords: []string{
		"enel", "eon", "e.on", "electrica", "engie", "distrigaz",
		"apa nova", "digi", "rcs", "rds", "orange", "vodafone", "telekom",
		"upc", "factura", "utilitati", "electricity", "internet",
	}},
	{Category: "Entertainment", Keywords: []string{
		"netflix", "spotify", "hbo", "disney", "youtube premium", "steam",
		"playstation", "cinema", "cinemax", "bilet", "teatru", "concert",
		"abonament sala",
	}},
	{Category: "Health", Keywords: []string{
		"farmacia", "farmacie", "catena", "helpnet", "sensiblu", "dr.max",
		"dona", "clinica", "medlife", "regina maria", "sanador", "spital",
		"dentist", "pharmacy", "medical",
	}},
	{Category: "Shopping", Keywords: []string{
		"emag", "altex", "flanco", "h&m", "zara", "decathlon",
		"hervis", "sephora", "douglas", "amazon", "aliexpress", "fashion days",
		"mall", "magazin",
	}},
	{Category: "Bank Fees", Keywords: []string{
		"comision", "taxa administrare", "taxa cont", "dobanda", "fee",
		"commission", "charge",
	}},
	{Category: "Cash Withdrawal", Keywords: []string{
		"retragere", "atm", "bancomat", "cash withdrawal", "numerar",
	}},
	{Category: "Transfers", Keywords: []string{
		"transfer", "virament", "plata catre", "revolut p2p",
	}},
	{Category: "Home & Garden", Keywords: []string{
		"leroy merlin", "hornbach", "brico", "dedeman", "ikea", "jysk",
		"mobila", "gradina", "garden",
	}},
}

// IncomeGroups is the ordered rule set for income descriptions.
var IncomeGroups = []KeywordGroup{
	{Category: "Salary", Keywords: []string{
		"salariu", "salary", "salar", "wage", "payroll", "drepturi salariale",
	}},
}
