package constants_test

import (
	"fmt"

	"github.com/agentstation/tryouts/pkg/constants"
)

// Example shows the tabular keywords that open a session and a sheet.
func Example() {
	fmt.Printf("%s,0601_6-8pm\n", constants.KeywordSession)
	fmt.Printf("%s,8GirlsNight1Station5\n", constants.KeywordSheet)
	fmt.Printf(",%s,%s,A,B\n", constants.HeadingTeam, constants.HeadingID)
	// Output:
	// sessionName,0601_6-8pm
	// sheetName,8GirlsNight1Station5
	// ,team,id,A,B
}

// Example_ratingScales shows the ratingValues counts of current sheets.
func Example_ratingScales() {
	fmt.Printf("%s: %d\n", constants.ETypeNight1, constants.NightRatingScale)
	fmt.Printf("%s: %d\n", constants.ETypeBubble, constants.BubbleRatingScale)
	// Output:
	// Night1: 6
	// Bubble: 20
}

// Example_logFile shows where diagnostics go by default.
func Example_logFile() {
	fmt.Println(constants.DefaultLogFile)
	// Output:
	// tryouts.log
}
