package generator

const (
	MinAdultAge = 18
	MaxAdultAge = 90
)

var (
	// Surnames is a pool of common surnames in England and Wales
	Surnames = []string{
		"Smith", "Jones", "Williams", "Taylor", "Brown", "Davies", "Evans", "Wilson",
		"Thomas", "Johnson", "Roberts", "Robinson", "Thompson", "Wright", "Walker", "White",
		"Edwards", "Hughes", "Green", "Hall", "Lewis", "Harris", "Clarke", "Patel",
		"Jackson", "Wood", "Turner", "Martin", "Cooper", "Hill", "Ward", "Morris",
		"Moore", "Clark", "Lee", "King", "Baker", "Harrison", "Morgan", "Allen",
		"James", "Scott", "Phillips", "Watson", "Davis", "Parker", "Price", "Bennett",
		"Young", "Griffiths", "Mitchell", "Kelly", "Cook", "Carter", "Richardson", "Bailey",
		"Collins", "Bell", "Shaw", "Murphy", "Miller", "Cox", "Richards", "Khan",
		"Marshall", "Anderson", "Simpson", "Ellis", "Adams", "Singh", "Begum", "Wilkinson",
		"Foster", "Chapman", "Powell", "Webb", "Rogers", "Gray", "Mason", "Ali",
		"Hunt", "Hussain", "Campbell", "Matthews", "Owen", "Palmer", "Holmes", "Mills",
		"Barnes", "Knight", "Lloyd", "Butler", "Russell", "Barker", "Fisher", "Stevens",
		"Jenkins", "Murray", "Dixon", "Harvey", "Graham", "Pearson", "Ahmed", "Fletcher",
		"Walsh", "Kaur", "Gibson", "Howard", "Andrews", "Stewart", "Elliott", "Reynolds",
		"Saunders", "Payne", "Fox", "Ford", "Pearce", "Day", "Brooks", "West",
		"Lawrence", "Cole", "Atkinson", "Bradley", "Spencer", "Gill", "Dawson", "Ball",
		"Burton", "O'Brien", "Watts", "Rose", "Booth", "Perry", "Ryan", "Grant",
		"Wells", "Armstrong", "Francis", "Rees", "Hayes", "Hart", "Hudson", "Newman",
		"Barrett", "Webster", "Hunter", "Gregory", "Carr", "Lowe", "Page", "Marsh",
		"Riley", "Dunn", "Woods", "Parsons", "Berry", "Stone", "Reid", "Holland",
		"Hawkins", "Harding", "Porter", "Robertson", "Newton", "Oliver", "Reed", "Kennedy",
		"Williamson", "Bird", "Gardner", "Shah", "Dean", "Lane", "Cooke", "Bates",
		"Henderson", "Parry", "Burgess", "Bishop", "Walton", "Burns", "Nicholson", "Shepherd",
		"Ross", "Cross", "Long", "Freeman", "Warren", "Nicholls", "Hamilton", "Byrne",
		"Sutton", "McDonald", "Yates", "Hodgson", "Robson", "Curtis", "Hopkins", "O'Connor",
		"Harper", "Coleman", "Watkins", "Moss", "McCarthy", "Chambers", "O'Neill", "Griffin",
		"Sharp", "Hardy", "Wheeler", "Potter", "Osborne", "Johnston", "Gordon", "Doyle",
		"Wallace", "George", "Jordan", "Hutchinson", "Rowe", "Burke", "May", "Pritchard",
		"Gilbert", "Willis", "Higgins", "Read", "Miles", "Stevenson", "Stephenson", "Hammond",
		"Arnold", "Buckley", "Walters", "Hewitt", "Barber", "Nelson", "Slater", "Austin",
		"Sullivan", "Whitehead", "Mann", "Frost", "Lambert", "Stephens", "Blake", "Akhtar",
		"Lynch", "Goodwin", "Barton", "Woodward", "Thomson", "Cunningham", "Quinn", "Barnett",
		"Baxter", "Bibi", "Clayton", "Nash", "Greenwood", "Jennings", "Holt", "Kemp",
		"Poole", "Gallagher", "Bond", "Stokes", "Tucker", "Davidson", "Fowler", "Heath",
		"Norman", "Middleton", "Lawson", "Banks", "French", "Stanley", "Jarvis", "Gibbs",
		"Ferguson", "Hayward", "Carroll", "Douglas", "Dickinson", "Todd", "Barlow", "Peters",
		"Lucas", "Knowles", "Hartley", "Miah", "Simmons", "Morton", "Alexander", "Field",
		"Morrison", "Norris", "Townsend", "Preston", "Hancock", "Thornton", "Baldwin", "Burrows",
		"Briggs", "Storey", "Pugh", "Butt", "Fraser", "Hanson", "Farrell", "Charlton",
	}

	// MaleForenames is a pool of forenames registered for boys in England and Wales
	MaleForenames = []string{
		"Oliver", "Jack", "Harry", "George", "Jacob", "Charlie", "Noah", "William",
		"Thomas", "Oscar", "James", "Muhammad", "Henry", "Alfie", "Leo", "Joshua",
		"Freddie", "Ethan", "Archie", "Isaac", "Joseph", "Alexander", "Samuel", "Daniel",
		"Logan", "Edward", "Lucas", "Max", "Mohammed", "Benjamin", "Mason", "Harrison",
		"Theo", "Jake", "Sebastian", "Finley", "Arthur", "Adam", "Dylan", "Riley",
		"Zachary", "Teddy", "David", "Toby", "Theodore", "Elijah", "Matthew", "Jenson",
		"Jayden", "Harvey", "Reuben", "Harley", "Luca", "Michael", "Hugo", "Lewis",
		"Frankie", "Luke", "Stanley", "Tommy", "Jude", "Blake", "Louie", "Nathan",
		"Gabriel", "Charles", "Bobby", "Mohammad", "Ryan", "Tyler", "Elliott", "Albert",
		"Elliot", "Rory", "Alex", "Frederick", "Ollie", "Louis", "Dexter", "Jaxon",
		"Liam", "Jackson", "Callum", "Ronnie", "Leon", "Kai", "Aaron", "Roman",
		"Austin", "Ellis", "Jamie", "Reggie", "Seth", "Carter", "Felix", "Ibrahim",
		"Sonny", "Kian", "Caleb", "Connor", "Jorge", "Talha", "Ahmed", "Kieran",
		"Stephen", "Paul", "Mark", "Andrew", "Richard", "Christopher", "Peter", "Graham",
		"Ian", "Colin", "Keith", "Barry", "Kevin", "Gareth", "Rhys", "Owen",
	}

	// FemaleForenames is a pool of forenames registered for girls in England and Wales
	FemaleForenames = []string{
		"Olivia", "Amelia", "Emily", "Isla", "Ava", "Jessica", "Isabella", "Lily",
		"Ella", "Mia", "Sophia", "Charlotte", "Poppy", "Sophie", "Grace", "Evie",
		"Scarlett", "Ruby", "Chloe", "Isabelle", "Daisy", "Freya", "Phoebe", "Florence",
		"Alice", "Sienna", "Matilda", "Evelyn", "Sofia", "Millie", "Harriet", "Eva",
		"Lucy", "Elsie", "Layla", "Imogen", "Aurora", "Rosie", "Maya", "Esme",
		"Elizabeth", "Lola", "Willow", "Ivy", "Erin", "Holly", "Emilia", "Molly",
		"Ellie", "Jasmine", "Eliza", "Lilly", "Abigail", "Georgia", "Maisie", "Eleanor",
		"Hannah", "Harper", "Amber", "Bella", "Thea", "Annabelle", "Emma", "Amelie",
		"Hazel", "Gracie", "Rose", "Summer", "Martha", "Violet", "Penelope", "Anna",
		"Nancy", "Zara", "Maria", "Darcie", "Maryam", "Megan", "Darcey", "Lottie",
		"Mila", "Heidi", "Lexi", "Lacey", "Francesca", "Robyn", "Bethany", "Julia",
		"Sara", "Aisha", "Darcy", "Zoe", "Clara", "Victoria", "Beatrice", "Hollie",
		"Arabella", "Sarah", "Maddison", "Leah", "Katie", "Aria", "Eloise", "Niamh",
		"Susan", "Margaret", "Patricia", "Janet", "Karen", "Julie", "Tracey", "Deborah",
		"Joanne", "Nicola", "Claire", "Rachel", "Gemma", "Kerry", "Sian", "Bethan",
	}
)

// Outward code shapes: A area letter, B district letter, 9 digit. Inward: 9II.
var postcodePatterns = []string{
	"A9 9II",
	"A99 9II",
	"AA9 9II",
	"AA99 9II",
	"A9B 9II",
	"AA9B 9II",
}

const (
	postcodeAreaLetters     = "ABCDEFGHIJKLMNOPRSTUWYZ"
	postcodeDistrictLetters = "ABCDEFGHJKPSTUW"
	postcodeInwardLetters   = "ABDEFGHJLNPQRSTUWXYZ"
)
