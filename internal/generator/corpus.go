package generator

// Quote is an attributed sentence from the quote corpus.
type Quote struct {
	Text   string
	Author string
}

var defaultVocabulary = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "it", "for", "not", "on", "with", "he", "as", "you", "do", "at", "this",
	"but", "his", "by", "from", "they", "we", "say", "her", "she", "or", "an", "will", "my", "one", "all", "would", "there", "their",
	"what", "so", "up", "out", "if", "about", "who", "get", "which", "go", "me", "when", "make", "can", "like", "time", "no", "just",
	"him", "know", "take", "people", "into", "year", "your", "good", "some", "could", "them", "see", "other", "than", "then", "now",
	"look", "only", "come", "its", "over", "think", "also", "back", "after", "use", "two", "how", "our", "work", "first", "well",
	"way", "even", "new", "want", "because", "any", "these", "give", "day", "most", "us", "great", "between", "need", "large",
	"often", "hand", "high", "place", "hold", "turn", "help", "line", "world", "own", "life", "few", "program", "city", "never",
	"example", "begin", "run", "story", "cut", "young", "talk", "soon", "list", "book", "very", "real", "move", "play", "small",
	"number", "always", "next", "near", "head", "light", "country", "right", "black", "body", "music", "color", "stand", "sun",
	"question", "area", "car", "long", "rock", "surface", "food", "learn", "plant", "cover", "farm", "thought", "across", "today",
	"during", "short", "best", "hour", "stop", "south", "bring", "east", "west", "blue", "gold", "green", "water", "air", "tree",
	"road", "door", "face", "form", "street", "boat", "late", "fast", "slow", "hard", "easy", "full", "open", "old", "big", "keep",
	"start", "same", "show", "such", "try", "call", "while", "last", "let", "feel", "seem", "ask", "those", "here", "every",
	"free", "down", "mean", "still", "past", "five", "walk", "side", "study", "away", "home", "find",
	"more", "read", "write", "love", "live", "true", "once", "each", "until", "clear", "idea", "might", "group",
	"done", "many", "watch", "end", "below", "kind", "off", "word", "point", "name", "state", "second", "child",
	"three", "set", "part", "leave", "student", "follow", "force", "change", "become", "different",
}

var quotes = []Quote{
	{Text: "The only way to do great work is to love what you do. If you have not found it yet keep looking.", Author: "Steve Jobs"},
	{Text: "In the middle of every difficulty lies opportunity. The harder the struggle the more glorious the triumph.", Author: "Albert Einstein"},
	{Text: "It does not matter how slowly you go as long as you do not stop moving forward with determination.", Author: "Confucius"},
	{Text: "Success is not final and failure is not fatal it is the courage to continue that counts the most.", Author: "Winston Churchill"},
	{Text: "The future belongs to those who believe in the beauty of their dreams and work toward them.", Author: "Eleanor Roosevelt"},
	{Text: "It always seems impossible until it is done and you have proved to everyone that you could do it.", Author: "Nelson Mandela"},
	{Text: "You miss one hundred percent of the shots you do not take so always try your best effort.", Author: "Wayne Gretzky"},
	{Text: "Life is what happens when you are busy making other plans so live in the present moment always.", Author: "John Lennon"},
	{Text: "Whether you think you can or you think you cannot either way you are absolutely right about it.", Author: "Henry Ford"},
	{Text: "The journey of a thousand miles begins with one single step taken in the right direction forward.", Author: "Lao Tzu"},
	{Text: "That which does not kill us makes us stronger and better prepared for the challenges ahead of us.", Author: "Friedrich Nietzsche"},
	{Text: "In the end it is not the years in your life that count but the life in your years.", Author: "Abraham Lincoln"},
	{Text: "Strive not to be a success but rather to be of value to the people around you every day.", Author: "Albert Einstein"},
	{Text: "The mind is everything and what you think you become so always think positive and constructive thoughts.", Author: "Buddha"},
	{Text: "An unexamined life is not worth living so take the time to reflect and know yourself deeply.", Author: "Socrates"},
	{Text: "Spread love everywhere you go and let no one ever come to you without leaving happier than before.", Author: "Mother Teresa"},
	{Text: "When you reach the end of your rope tie a knot in it and hang on with everything you have.", Author: "Franklin Roosevelt"},
	{Text: "Always remember that you are absolutely unique just like everyone else on this entire planet Earth.", Author: "Margaret Mead"},
	{Text: "Do not go where the path may lead go instead where there is no path and leave a trail.", Author: "Ralph Waldo Emerson"},
	{Text: "The greatest glory in living lies not in never falling but in rising every time we fall down.", Author: "Nelson Mandela"},
	{Text: "You will face many defeats in life but never let yourself be defeated by any of them completely.", Author: "Maya Angelou"},
	{Text: "Believe you can and you are halfway there to achieving everything you have ever dreamed of reaching.", Author: "Theodore Roosevelt"},
	{Text: "I have not failed I have just found ten thousand ways that do not work and I keep going.", Author: "Thomas Edison"},
	{Text: "Everything you have ever wanted is on the other side of fear so push through and keep going.", Author: "George Addair"},
	{Text: "The secret of getting ahead is getting started no matter how small your first step might be.", Author: "Mark Twain"},
}
