package service

// Financial-concept glossary for the concept-lookup branch. Kept as an
// ordered slice so the first matching keyword wins deterministically.
//
// "stock" and "interest" are deliberately not glossary keys: concept lookup
// runs first, and those words must still reach the catalog and savings
// branches below it.
type concept struct {
	keyword     string
	explanation string
}

var conceptGlossary = []concept{
	{
		keyword:     "budget",
		explanation: "A budget is a financial plan that helps you track income and expenses. It's crucial for managing your money effectively.",
	},
	{
		keyword:     "investing",
		explanation: "Investing means putting money into assets like stocks or savings accounts with the goal of growing your wealth over time.",
	},
	{
		keyword:     "dividend",
		explanation: "Dividends are payments companies make to shareholders from their profits. They're a way to earn income from stocks.",
	},
	{
		keyword:     "risk",
		explanation: "Risk in investing refers to the possibility of losing money. Generally, higher potential returns come with higher risks.",
	},
	{
		keyword:     "diversification",
		explanation: "Diversification means spreading your investments across different assets to reduce risk.",
	},
	{
		keyword:     "compound",
		explanation: "Compound interest is when you earn interest on both your initial investment and previously earned interest.",
	},
	{
		keyword:     "market",
		explanation: "The stock market is where stocks are bought and sold. Prices can go up or down based on various factors.",
	},
}
