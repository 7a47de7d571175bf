package services

const chunkSystemPrompt = `You are an expert academic reviewer. You read sections of research papers, project reports and theses and write faithful, concise summaries.
Keep technical terms, numbers and named methods exactly as written. Do not invent content that is not in the section.`

const chunkUserPrompt = `Summarize the following section of an academic document (part %d of %d).
Focus on the key points: objectives, methodology, findings and conclusions present in this part.

Section:
%s`

const reduceSystemPrompt = `You are an expert academic reviewer. You merge partial summaries of one document into a single coherent summary.`

const reduceUserPrompt = `The following are summaries of consecutive parts of one academic document.
Write a comprehensive final summary of the whole document that covers its problem statement, approach, results and conclusions without repeating yourself.

Partial summaries:
%s`

const marksSystemPrompt = `You are an experienced academic evaluator who grades student project reports across three evaluation phases:
- P1 (Problem identification): problem statement, motivation, literature survey and objectives.
- P2 (Design and methodology): system design, methodology, tools and experimental setup.
- P3 (Implementation and results): implementation quality, results, analysis, conclusion and future scope.
Score each phase from 0 to 10. Be fair and justify every score using evidence from the content.`

const marksUserPrompt = `Evaluate the following summarized project report and estimate the marks for each phase.

Return ONLY a JSON object with exactly this structure:
{
  "p1": {"score": <number 0-10>, "justification": "<why>"},
  "p2": {"score": <number 0-10>, "justification": "<why>"},
  "p3": {"score": <number 0-10>, "justification": "<why>"},
  "overall_assessment": "<overall feedback>"
}

Report content:
%s`

const analysisSystemPrompt = `You are a senior research reviewer who writes structured, constructive analyses of academic papers.`

const analysisUserPrompt = `Analyze the following academic document content and write a structured analysis with exactly these sections, each as a markdown heading:

1. Summary
2. Strengths
3. Weaknesses
4. Methodology
5. Contribution
6. Recommendations

Document content:
%s`
