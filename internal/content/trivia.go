package content

// Question is a multiple-choice trivia question. Answer indexes Choices.
type Question struct {
	Text    string
	Choices []string
	Answer  int
}

// Questions are the built-in trivia questions
var Questions = []Question{
	{"Which planet is known as the Red Planet?", []string{"Venus", "Mars", "Jupiter", "Mercury"}, 1},
	{"How many legs does a spider have?", []string{"Six", "Eight", "Ten", "Twelve"}, 1},
	{"What is the largest ocean on Earth?", []string{"Atlantic", "Indian", "Arctic", "Pacific"}, 3},
	{"Which gas do plants absorb from the air?", []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"}, 2},
	{"What is the capital of Japan?", []string{"Osaka", "Kyoto", "Tokyo", "Sapporo"}, 2},
	{"How many minutes are in a day?", []string{"1440", "1240", "1600", "960"}, 0},
	{"Which instrument has 88 keys?", []string{"Organ", "Piano", "Accordion", "Harpsichord"}, 1},
	{"What is the hardest natural substance?", []string{"Gold", "Iron", "Diamond", "Quartz"}, 2},
	{"Which animal is the tallest?", []string{"Elephant", "Giraffe", "Camel", "Moose"}, 1},
	{"What is frozen water called?", []string{"Steam", "Ice", "Dew", "Fog"}, 1},
	{"How many continents are there?", []string{"Five", "Six", "Seven", "Eight"}, 2},
	{"Which bird is a symbol of peace?", []string{"Eagle", "Dove", "Crow", "Parrot"}, 1},
}
