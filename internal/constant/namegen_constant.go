package constant

// NamesPromptTemplate asks for a raw JSON array of name candidates.
// fmt args: count, theme.
const NamesPromptTemplate = `
Generate a list of %d unique baby names that are inspired by the theme "%s" and have English origin.
Each name must be accompanied by a short 1-2 sentence summary that explains the name's origin and meaning.
Only include names that are truly of English linguistic or historical origin.
Return only a valid JSON array like this:
[
  { "name": "Ash", "summary": "An English nature-inspired name referring to the ash tree, symbolizing resilience and wisdom." },
  ...
]
Do not include explanations or extra text - return raw JSON only.
`

// NamesGenderLine is appended when a gender preference is given.
// fmt arg: gender ("boy", "girl" or "neutral").
const NamesGenderLine = `All names must suit a %s.`

// DescriptionSystemPrompt steers the prose model for single-name descriptions.
const DescriptionSystemPrompt = `You are a creative assistant that always writes beautiful, poetic and informative name descriptions. Every response must be at least 150 words long and feel emotionally rich.`

// DescriptionPromptTemplate requests the long-form description.
// fmt arg: name.
const DescriptionPromptTemplate = `
Write a poetic and imaginative description of the baby name "%s".
Your answer must contain **at least 3 distinct paragraphs** and be **at least 150 words long**.

Include:
- The etymology and meaning of the name (if known)
- Its historical or cultural use (real or symbolic)
- Notable people or literary references (if any)
- Emotional and symbolic associations
- Phonetic character and overall impression

Even if the name is common or well-known, do not shorten the answer.
Use lyrical language, rich metaphors and evoke emotional imagery.
This should read like a mini-essay or narrative.

Do not list bullet points. Write in flowing prose.
`

// DescriptionWikiContextTemplate prefixes the prompt with an advisory
// reference summary when the lookup produced one.
// fmt arg: summary.
const DescriptionWikiContextTemplate = `
For factual grounding, a reference encyclopedia says: %q
Use it only where it helps; do not quote it verbatim.
`

// FallbackDescription replaces generator responses that are too short to be
// useful. A favorite can always exist with this placeholder enrichment.
const FallbackDescription = `This name appears to be fresh and unique. There might be no known history or famous bearers yet - but your child could be the first to shape its story.`

// MinDescriptionWords is the short-response threshold below which
// FallbackDescription is substituted.
const MinDescriptionWords = 50
