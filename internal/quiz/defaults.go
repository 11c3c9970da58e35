package quiz

import "github.com/google/uuid"

// DefaultSetID marks results produced by the built-in question set.
const DefaultSetID = "default"

// PlaceholderOptions replaces any generated option list shorter than two
// entries; the generator is not trusted to honor the schema.
var PlaceholderOptions = []string{"Oui", "Non", "Peut-être", "Je ne sais pas"}

var defaultQuestions = []Question{
    {
        ID:            "q1",
        Question:      "Que signifie 你好 (Nǐ hǎo) ?",
        Options:       []string{"Bonjour", "Au revoir", "Merci", "Je t'aime"},
        CorrectAnswer: "Bonjour",
        Explanation:   "“Nǐ” signifie “tu” et “hǎo” signifie “bon”.",
    },
    {
        ID:            "q2",
        Question:      "Comment dit-on “merci” en mandarin ?",
        Options:       []string{"再见 (Zàijiàn)", "谢谢 (Xièxie)", "请 (Qǐng)", "对不起 (Duìbuqǐ)"},
        CorrectAnswer: "谢谢 (Xièxie)",
        Explanation:   "“Xièxie” est la formule de remerciement la plus courante.",
    },
    {
        ID:            "q3",
        Question:      "Que signifie 再见 (Zàijiàn) ?",
        Options:       []string{"Bonjour", "Au revoir", "Bonne nuit", "À table"},
        CorrectAnswer: "Au revoir",
        Explanation:   "Littéralement “se revoir” : zài (encore) + jiàn (voir).",
    },
}

// DefaultQuestions returns a fresh copy of the built-in set so sessions
// cannot mutate the shared backing array.
func DefaultQuestions() []Question {
    out := make([]Question, len(defaultQuestions))
    copy(out, defaultQuestions)
    return out
}

// Normalize assigns fresh identifiers to generated questions and swaps in
// the placeholder options wherever fewer than two were produced.
func Normalize(questions []Question) []Question {
    out := make([]Question, 0, len(questions))
    for _, q := range questions {
        q.ID = uuid.NewString()
        if len(q.Options) < 2 {
            q.Options = append([]string(nil), PlaceholderOptions...)
        }
        out = append(out, q)
    }
    return out
}
