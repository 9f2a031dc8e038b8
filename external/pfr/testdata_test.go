package pfr

const joshAllenPage = `<html><body>
<div id="meta">
  <div>
    <h1><span>Josh Allen</span></h1>
    <p><strong>Position</strong>: QB &nbsp;&nbsp; <strong>Throws:</strong> Right</p>
    <p><strong>Team</strong>: <span itemprop="affiliation"><a href="/teams/buf/2025.htm">Buffalo Bills</a></span></p>
  </div>
</div>
<div id="all_stats">
<!--
<table id="stats">
<thead>
  <tr class="over_header"><th colspan="3"></th><th colspan="2">Passing</th><th>Snap Counts</th></tr>
  <tr><th>Date</th><th>Team</th><th>Opp</th><th>Yds</th><th>Sk</th><th>OffSnp</th></tr>
</thead>
<tbody>
  <tr><th>2025-09-07</th><td>BUF</td><td>BAL</td><td>10</td><td>1</td><td>2</td></tr>
  <tr><th>2025-09-14</th><td>BUF</td><td>NYJ</td><td colspan="3">Inactive</td></tr>
  <tr class="thead"><th>Date</th><th>Team</th><th>Opp</th><th>Yds</th><th>Sk</th><th>OffSnp</th></tr>
  <tr><th>2025-09-21</th><td>BUF</td><td>MIA</td><td>20</td><td>0</td><td>3</td></tr>
</tbody>
<tfoot><tr><th colspan="3"></th><td>30</td><td>1</td><td>5</td></tr></tfoot>
</table>
-->
</div>
</body></html>`
