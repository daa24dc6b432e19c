// Package quotes holds the static philosopher quote corpus and the
// context classifier that picks a thematically fitting quote for a
// developer's response.
package quotes

// Context categorizes the emotional register a quote speaks to.
type Context string

const (
	ContextAvoidance    Context = "avoidance"
	ContextOverwhelm    Context = "overwhelm"
	ContextStrategy     Context = "strategy"
	ContextVictory      Context = "victory"
	ContextDefeat       Context = "defeat"
	ContextPerseverance Context = "perseverance"
)

// Quote is one immutable corpus entry.
type Quote struct {
	Text        string  `json:"text"`
	Philosopher string  `json:"philosopher"`
	Context     Context `json:"context"`
	Source      string  `json:"source"`
}

// Corpus is the full static quote table. Victory and perseverance are
// guaranteed non-empty; closing quote selection depends on that.
var Corpus = []Quote{
	// Nietzsche — avoidance
	{Text: "He who has a why to live can bear almost any how.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Twilight of the Idols"},
	{Text: "The higher we soar, the smaller we appear to those who cannot fly.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Beyond Good and Evil"},
	{Text: "You must have chaos within you to give birth to a dancing star.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Thus Spoke Zarathustra"},
	{Text: "There are no facts, only interpretations.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Notebooks"},
	{Text: "What does not kill me makes me stronger.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Twilight of the Idols"},
	{Text: "The snake which cannot cast its skin has to die.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Daybreak"},
	{Text: "One must still have chaos in oneself to be able to give birth to a dancing star.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Thus Spoke Zarathustra"},
	{Text: "In individuals, insanity is rare; but in groups, parties, nations and epochs, it is the rule.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Beyond Good and Evil"},
	{Text: "Whoever fights monsters should see to it that in the process he does not become a monster.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Beyond Good and Evil"},
	{Text: "The doer alone learns.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Thus Spoke Zarathustra"},
	{Text: "Convictions are more dangerous foes of truth than lies.", Philosopher: "Friedrich Nietzsche", Context: ContextAvoidance, Source: "Human, All Too Human"},

	// Seneca — overwhelm
	{Text: "It is not that we have a short time to live, but that we waste a great deal of it.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "On the Shortness of Life"},
	{Text: "We suffer more in imagination than in reality.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "Letters to Lucilius"},
	{Text: "Difficulties strengthen the mind, as labor does the body.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "Moral Letters"},
	{Text: "Begin at once to live, and count each separate day as a separate life.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "Moral Letters"},
	{Text: "The whole future lies in uncertainty: live immediately.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "Moral Letters"},
	{Text: "A gem cannot be polished without friction, nor a man perfected without trials.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "Moral Letters"},
	{Text: "It is not because things are difficult that we do not dare, it is because we do not dare that things are difficult.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "Moral Letters"},
	{Text: "No man was ever wise by chance.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "Moral Letters"},
	{Text: "As is a tale, so is life: not how long it is, but how good it is, is what matters.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "Moral Letters"},
	{Text: "True happiness is to enjoy the present, without anxious dependence upon the future.", Philosopher: "Seneca", Context: ContextOverwhelm, Source: "On the Happy Life"},

	// Sun Tzu — strategy
	{Text: "Know thy enemy and know yourself; in a hundred battles, you will never be defeated.", Philosopher: "Sun Tzu", Context: ContextStrategy, Source: "The Art of War"},
	{Text: "In the midst of chaos, there is also opportunity.", Philosopher: "Sun Tzu", Context: ContextStrategy, Source: "The Art of War"},
	{Text: "Victorious warriors win first and then go to war, while defeated warriors go to war first and then seek to win.", Philosopher: "Sun Tzu", Context: ContextStrategy, Source: "The Art of War"},
	{Text: "The supreme art of war is to subdue the enemy without fighting.", Philosopher: "Sun Tzu", Context: ContextStrategy, Source: "The Art of War"},
	{Text: "Appear weak when you are strong, and strong when you are weak.", Philosopher: "Sun Tzu", Context: ContextStrategy, Source: "The Art of War"},
	{Text: "Let your plans be dark and impenetrable as night, and when you move, fall like a thunderbolt.", Philosopher: "Sun Tzu", Context: ContextStrategy, Source: "The Art of War"},

	// Victory
	{Text: "Man is something that shall be overcome. What have you done to overcome him?", Philosopher: "Friedrich Nietzsche", Context: ContextVictory, Source: "Thus Spoke Zarathustra"},
	{Text: "The impediment to action advances action. What stands in the way becomes the way.", Philosopher: "Marcus Aurelius", Context: ContextVictory, Source: "Meditations"},
	{Text: "It is not the mountain we conquer, but ourselves.", Philosopher: "Edmund Hillary", Context: ContextVictory, Source: "Attributed"},

	// Perseverance
	{Text: "Our greatest glory is not in never falling, but in rising every time we fall.", Philosopher: "Confucius", Context: ContextPerseverance, Source: "Analects"},
	{Text: "Fall seven times, stand up eight.", Philosopher: "Japanese Proverb", Context: ContextPerseverance, Source: "Traditional"},
	{Text: "The only way to do great work is to love what you do.", Philosopher: "Steve Jobs", Context: ContextPerseverance, Source: "Stanford Commencement"},
	{Text: "What we achieve inwardly will change outer reality.", Philosopher: "Plutarch", Context: ContextPerseverance, Source: "Moralia"},
}
