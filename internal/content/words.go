package content

// Words is a curated list of words that are fun to explain without saying them
var Words = []string{
	// Animals
	"giraffe", "penguin", "kangaroo", "octopus", "chameleon",
	"dolphin", "hedgehog", "flamingo", "scorpion", "platypus",
	"panther", "falcon", "beetle", "walrus", "jellyfish",

	// Places
	"casino", "subway", "rooftop", "lighthouse", "warehouse",
	"temple", "fortress", "pyramid", "bunker", "stadium",
	"harbor", "factory", "library", "volcano", "glacier",

	// Objects
	"umbrella", "compass", "lantern", "hourglass", "telescope",
	"helmet", "mirror", "hammer", "anchor", "whistle",
	"keyboard", "joystick", "satellite", "antenna", "parachute",

	// Food & Drinks
	"coffee", "sushi", "burger", "pizza", "pancake",
	"chocolate", "vanilla", "cinnamon", "wasabi", "popcorn",

	// Nature
	"thunder", "lightning", "tornado", "eclipse", "aurora",
	"tsunami", "avalanche", "rainbow", "meteor", "desert",

	// Activities
	"karaoke", "juggling", "camping", "skydiving", "knitting",
	"surfing", "bowling", "gardening", "origami", "fencing",
}

// Dilemma is a would-you-rather pair
type Dilemma struct {
	Prompt  string
	OptionA string
	OptionB string
}

// Dilemmas are the would-you-rather prompts
var Dilemmas = []Dilemma{
	{"Would you rather...", "be able to fly", "be invisible"},
	{"Would you rather...", "never use a phone again", "never watch TV again"},
	{"Would you rather...", "live in the mountains", "live by the sea"},
	{"Would you rather...", "always be 10 minutes late", "always be 20 minutes early"},
	{"Would you rather...", "speak every language", "play every instrument"},
	{"Would you rather...", "have a rewind button", "have a pause button"},
	{"Would you rather...", "eat only pizza forever", "never eat pizza again"},
	{"Would you rather...", "explore space", "explore the deep ocean"},
	{"Would you rather...", "be famous", "be rich and unknown"},
	{"Would you rather...", "have summer all year", "have winter all year"},
	{"Would you rather...", "read minds", "see the future"},
	{"Would you rather...", "fight one horse-sized duck", "fight a hundred duck-sized horses"},
}

// HotTakes are statements to agree or disagree with
var HotTakes = []string{
	"Pineapple belongs on pizza.",
	"Cereal is a soup.",
	"Cats are better than dogs.",
	"Breakfast is the most overrated meal.",
	"Movies were better twenty years ago.",
	"A hot dog is a sandwich.",
	"Socks with sandals are fine.",
	"Sequels are never as good as the original.",
	"Working from home beats the office.",
	"Board games are better than video games.",
	"Tea is better than coffee.",
	"Winter is the best season.",
}

// MostLikelyPrompts complete "Who is most likely to..."
var MostLikelyPrompts = []string{
	"become famous",
	"survive a zombie apocalypse",
	"forget their own birthday",
	"win a reality show",
	"get lost in their own city",
	"adopt ten cats",
	"eat something off the floor",
	"start a band",
	"cry during a cartoon",
	"become a millionaire",
	"laugh at the wrong moment",
	"move to another country on a whim",
}
