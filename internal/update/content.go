package update

// roadmapMarkdown is the static 2-month transformation roadmap shown in the
// roadmap view. Rendered once through glamour and cached in the viewport.
const roadmapMarkdown = `# 60-Day Transformation

Eight daily tasks, every day, for two months. Progress beats perfection:
an imperfect day still counts as an active day.

## Weeks 1-2 — Foundation

Build the habit loop. Do every task at reduced volume if needed; the goal
is showing up daily, not maxing out.

- Log something for every task, even a single rep
- Fix a consistent wake-up and journal time

## Weeks 3-4 — Volume

Raise the numbers. Full pushup/squat counts, full reading quota.

- First perfect-day streak attempt
- Use notes to track what breaks your streaks

## Weeks 5-6 — Consistency

Protect the streak. Consistency percentage is the number to watch now.

- No zero days
- Schedule reminder hours around your weakest time of day

## Weeks 7-8 — Peak

Every task, every day. Finish with a perfect final week.

- Review the history view daily
- Plan what replaces the challenge when the 60 days are done
`
