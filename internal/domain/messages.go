package domain

// User-facing replies.
const (
	MsgWelcome             = "Welcome to the Stake Mines Predictor Bot! Enter the number of mines (1-24):"
	MsgInvalidMineCount    = "Please specify a valid number of mines (1-24)."
	MsgMineCountOutOfRange = "Please enter a number between 1 and 24."
	MsgSeedPrompt          = "Please enter your Stake client ID:"
	MsgStartOver           = "Please start a new prediction by using /predict <number_of_mines>."
	MsgPredictionFailed    = "Something went wrong while generating the pattern. Please try /predict again."
	MsgHelp                = "Commands:\n/start - show the welcome message\n/predict <number_of_mines> - start a prediction (1-24)\nAfter /predict, send your client ID to receive the pattern."

	HistoryEchoPrefix = "Historical Predictions: "
	PatternPrefix     = "Predicted Pattern:\n"
)
